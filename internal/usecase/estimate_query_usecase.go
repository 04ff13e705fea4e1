package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"estimate_service/internal/domain/entities"
)

const (
	MaxHistoryDetails = 10
	fallbackYears     = 5
)

func (u *EstimateUseCase) Detail(ctx context.Context, id int64) (entities.EstimateDetail, error) {
	e, err := u.loadEstimate(ctx, id)
	if err != nil {
		return entities.EstimateDetail{}, err
	}
	rev, err := u.currentRevision(ctx, e)
	if err != nil {
		return entities.EstimateDetail{}, err
	}
	return u.assembleDetail(ctx, e, rev)
}

// DetailByRevision returns a historical revision. The revision must belong to
// the estimate; a revision of another estimate is reported as not found.
func (u *EstimateUseCase) DetailByRevision(ctx context.Context, id int64, revisionID string) (entities.EstimateDetail, error) {
	e, err := u.loadEstimate(ctx, id)
	if err != nil {
		return entities.EstimateDetail{}, err
	}
	revisionID = strings.TrimSpace(revisionID)
	if revisionID == "" {
		return entities.EstimateDetail{}, ErrRevisionNotFound
	}
	rev, err := u.repo.GetRevision(ctx, revisionID)
	if err != nil {
		return entities.EstimateDetail{}, err
	}
	if rev.ID == "" || rev.EstimateID != e.ID {
		return entities.EstimateDetail{}, ErrRevisionNotFound
	}
	return u.assembleDetail(ctx, e, rev)
}

// History lists every revision newest first, without sections.
func (u *EstimateUseCase) History(ctx context.Context, id int64) ([]entities.Revision, error) {
	e, err := u.loadEstimate(ctx, id)
	if err != nil {
		return nil, err
	}
	revs, err := u.repo.ListRevisions(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	sortRevisionsDesc(revs)
	return revs, nil
}

// HistoryDetails returns full detail for up to limit revisions older than the
// current one, newest first. limit is clamped to 1..MaxHistoryDetails and a
// non-positive value means the maximum.
func (u *EstimateUseCase) HistoryDetails(ctx context.Context, id int64, limit int) ([]entities.EstimateDetail, error) {
	if limit <= 0 || limit > MaxHistoryDetails {
		limit = MaxHistoryDetails
	}
	e, err := u.loadEstimate(ctx, id)
	if err != nil {
		return nil, err
	}
	revs, err := u.repo.ListRevisions(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	sortRevisionsDesc(revs)

	projectName, err := u.projectName(ctx, e.ProjectID)
	if err != nil {
		return nil, err
	}

	out := make([]entities.EstimateDetail, 0, limit)
	for _, rev := range revs {
		if len(out) == limit {
			break
		}
		if rev.ID == e.CurrentRevisionID {
			continue
		}
		sections, err := u.repo.ListSections(ctx, rev.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.EstimateDetail{
			Estimate:    e,
			ProjectName: projectName,
			Revision:    rev,
			Sections:    sortSections(sections),
		})
	}
	return out, nil
}

// List returns one summary row per live estimate matching every filter,
// ordered by id descending.
func (u *EstimateUseCase) List(ctx context.Context, filter ListFilter) ([]entities.EstimateSummary, error) {
	rows, err := u.summaries(ctx, filter.BusinessState)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]entities.EstimateSummary, 0, len(rows))
	for _, row := range rows {
		if filter.Year != nil && row.Year != *filter.Year {
			continue
		}
		if filter.DepartmentID != nil && (row.DepartmentID == nil || *row.DepartmentID != *filter.DepartmentID) {
			continue
		}
		if query != "" && !matchesQuery(row, query) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// DistinctYears returns the effective years of matching estimates, newest
// first. With no estimates it falls back to the last five calendar years.
func (u *EstimateUseCase) DistinctYears(ctx context.Context, businessState entities.BusinessState) ([]int, error) {
	rows, err := u.summaries(ctx, businessState)
	if err != nil {
		return nil, err
	}

	seen := map[int]struct{}{}
	years := []int{}
	for _, row := range rows {
		if _, ok := seen[row.Year]; ok {
			continue
		}
		seen[row.Year] = struct{}{}
		years = append(years, row.Year)
	}
	if len(years) == 0 {
		current := u.now().Year()
		for i := 0; i < fallbackYears; i++ {
			years = append(years, current-i)
		}
		return years, nil
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// summaries joins live estimates with their projects and current revisions.
func (u *EstimateUseCase) summaries(ctx context.Context, businessState entities.BusinessState) ([]entities.EstimateSummary, error) {
	if businessState != "" && !businessState.Valid() {
		return nil, ErrInvalidBusinessState
	}
	estimates, err := u.repo.List(ctx, businessState)
	if err != nil {
		return nil, err
	}

	projectIDs := make([]int64, 0, len(estimates))
	revisionIDs := make([]string, 0, len(estimates))
	for _, e := range estimates {
		projectIDs = append(projectIDs, e.ProjectID)
		if e.CurrentRevisionID != "" {
			revisionIDs = append(revisionIDs, e.CurrentRevisionID)
		}
	}
	projects, err := u.catalog.GetProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	revisions, err := u.repo.GetRevisions(ctx, revisionIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]entities.EstimateSummary, 0, len(estimates))
	for _, e := range estimates {
		if e.IsDeleted() {
			continue
		}
		project := projects[e.ProjectID]
		row := entities.EstimateSummary{
			ID:            e.ID,
			EstimateNo:    e.EstimateNo,
			ProjectID:     e.ProjectID,
			ProjectName:   project.Name,
			DepartmentID:  project.DepartmentID,
			Year:          effectiveYear(project, e),
			ReceiverName:  e.ReceiverName,
			Title:         e.Title,
			BusinessState: e.BusinessState,
			CreatedAt:     e.CreatedAt,
			AuthorName:    e.AuthorName,
		}
		if rev, ok := revisions[e.CurrentRevisionID]; ok {
			row.Subtotal, row.Tax, row.Total = rev.Subtotal, rev.Tax, rev.Total
		} else {
			log.Printf("[estimate][usecase] list: current revision missing estimate_id=%d revision_id=%s", e.ID, e.CurrentRevisionID)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].ID > rows[b].ID })
	return rows, nil
}

func (u *EstimateUseCase) assembleDetail(ctx context.Context, e entities.Estimate, rev entities.Revision) (entities.EstimateDetail, error) {
	sections, err := u.repo.ListSections(ctx, rev.ID)
	if err != nil {
		return entities.EstimateDetail{}, err
	}
	projectName, err := u.projectName(ctx, e.ProjectID)
	if err != nil {
		return entities.EstimateDetail{}, err
	}
	return entities.EstimateDetail{
		Estimate:    e,
		ProjectName: projectName,
		Revision:    rev,
		Sections:    sortSections(sections),
	}, nil
}

func (u *EstimateUseCase) projectName(ctx context.Context, projectID int64) (string, error) {
	project, err := u.catalog.GetProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	return project.Name, nil
}

// effectiveYear is the project start year, then the project creation year,
// then the estimate creation year.
func effectiveYear(p entities.Project, e entities.Estimate) int {
	switch {
	case p.StartDate != nil && !p.StartDate.IsZero():
		return p.StartDate.Year()
	case p.CreatedAt != nil && !p.CreatedAt.IsZero():
		return p.CreatedAt.Year()
	}
	return e.CreatedAt.In(time.UTC).Year()
}

func matchesQuery(row entities.EstimateSummary, query string) bool {
	for _, field := range []string{row.Title, row.ProjectName, row.EstimateNo, row.ReceiverName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func sortRevisionsDesc(revs []entities.Revision) {
	sort.SliceStable(revs, func(a, b int) bool { return revs[a].RevisionNo > revs[b].RevisionNo })
}

func sortSections(sections []entities.Section) []entities.Section {
	sort.SliceStable(sections, func(a, b int) bool { return sections[a].SectionOrder < sections[b].SectionOrder })
	for i := range sections {
		lines := sections[i].Lines
		sort.SliceStable(lines, func(a, b int) bool { return lines[a].LineOrder < lines[b].LineOrder })
	}
	return sections
}
