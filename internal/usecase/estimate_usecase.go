package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"estimate_service/internal/domain/calculation"
	"estimate_service/internal/domain/entities"
	"estimate_service/internal/domain/formula"
	"estimate_service/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrEstimateNotFound     = errors.New("estimate not found")
	ErrRevisionNotFound     = errors.New("estimate revision not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrDuplicateEstimate    = errors.New("project already has an estimate")
	ErrCorruptState         = errors.New("estimate has no resolvable current revision")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidEstimateID    = errors.New("invalid estimate id")
	ErrInvalidProjectID     = errors.New("invalid project_id")
	ErrInvalidBusinessState = errors.New("invalid business_state")
	ErrInvalidSections      = errors.New("invalid sections")
	ErrConcurrentRevision   = errors.New("estimate was revised concurrently")
	ErrRevisionTooLarge     = errors.New("revision has too many sections")
)

const (
	defaultEstimateNoPrefix = "EST"
	defaultEstimateTitle    = "Estimate"
	defaultLineUnit         = "EA"
)

// CreateEstimateCommand is the input of Create. Sections carry caller values;
// amounts and subtotals are always recomputed.
type CreateEstimateCommand struct {
	ProjectID    int64
	Title        string
	ReceiverName string
	Memo         string
	Sections     []entities.Section
}

// ReviseEstimateCommand is the input of Revise. Nil header fields are left
// unchanged.
type ReviseEstimateCommand struct {
	Title        *string
	ReceiverName *string
	Memo         *string
	Reason       string
	Sections     []entities.Section
}

type CreateResult struct {
	ID         int64
	EstimateNo string
	RevisionID string
}

// ListFilter narrows List. Zero values mean "no filter".
type ListFilter struct {
	Year          *int
	DepartmentID  *int64
	BusinessState entities.BusinessState
	Query         string
}

//go:generate mockgen -source=estimate_usecase.go -destination=../adapter/http/handlers/mocks/estimate_usecase_mock.go -package=mocks

// IEstimateUseCase exposes the estimate calculation and revisioning engine.
//
//   - Create / Revise => append-only revisions with recomputed totals
//   - Detail / History / HistoryDetails => reconstruction of stored revisions
//   - List / DistinctYears => lightweight projections for list screens

type IEstimateUseCase interface {
	Create(ctx context.Context, principal entities.Principal, cmd CreateEstimateCommand) (CreateResult, error)
	Revise(ctx context.Context, principal entities.Principal, id int64, cmd ReviseEstimateCommand) (entities.Revision, error)
	UpdateBusinessState(ctx context.Context, principal entities.Principal, id int64, state entities.BusinessState) (entities.Estimate, error)
	Delete(ctx context.Context, principal entities.Principal, id int64) error
	Purge(ctx context.Context, id int64) error
	Preview(ctx context.Context, sections []entities.Section) (calculation.Result, error)

	Detail(ctx context.Context, id int64) (entities.EstimateDetail, error)
	DetailByRevision(ctx context.Context, id int64, revisionID string) (entities.EstimateDetail, error)
	History(ctx context.Context, id int64) ([]entities.Revision, error)
	HistoryDetails(ctx context.Context, id int64, limit int) ([]entities.EstimateDetail, error)
	List(ctx context.Context, filter ListFilter) ([]entities.EstimateSummary, error)
	DistinctYears(ctx context.Context, businessState entities.BusinessState) ([]int, error)
}

type EstimateUseCase struct {
	repo     interfaces.IEstimateRepository
	catalog  interfaces.ICatalogRepository
	now      func() time.Time
	newID    func() string
	noPrefix string
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, catalog interfaces.ICatalogRepository) *EstimateUseCase {
	prefix := strings.TrimSpace(os.Getenv("ESTIMATE_NO_PREFIX"))
	if prefix == "" {
		prefix = defaultEstimateNoPrefix
	}
	return &EstimateUseCase{
		repo:     repo,
		catalog:  catalog,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		noPrefix: prefix,
	}
}

func (u *EstimateUseCase) Create(ctx context.Context, principal entities.Principal, cmd CreateEstimateCommand) (CreateResult, error) {
	log.Printf("[estimate][usecase] create start project_id=%d sections=%d", cmd.ProjectID, len(cmd.Sections))
	if !principal.Authenticated() {
		return CreateResult{}, ErrUnauthorized
	}
	if cmd.ProjectID <= 0 {
		return CreateResult{}, ErrInvalidProjectID
	}
	if len(cmd.Sections) > interfaces.MaxSectionsPerRevision {
		return CreateResult{}, ErrRevisionTooLarge
	}

	// Enforce: 1 estimate per project, checked before anything is written.
	exists, err := u.repo.ExistsForProject(ctx, cmd.ProjectID)
	if err != nil {
		return CreateResult{}, err
	}
	if exists {
		log.Printf("[estimate][usecase] duplicate estimate project_id=%d", cmd.ProjectID)
		return CreateResult{}, ErrDuplicateEstimate
	}

	project, err := u.catalog.GetProject(ctx, cmd.ProjectID)
	if err != nil {
		return CreateResult{}, err
	}
	if project.ID == 0 {
		return CreateResult{}, ErrProjectNotFound
	}

	now := u.now()
	rev := entities.Revision{
		ID:         u.newID(),
		RevisionNo: 1,
		Status:     entities.RevisionStatusDraft,
		CreatedBy:  principal.ID,
		AuthorName: principal.Name,
		CreatedAt:  now,
	}
	result, sections, err := u.prepareRevision(ctx, rev.ID, cmd.Sections)
	if err != nil {
		log.Printf("[estimate][usecase] create calculation failed project_id=%d err=%v", cmd.ProjectID, err)
		return CreateResult{}, err
	}
	rev.Subtotal, rev.Tax, rev.Total = result.Subtotal, result.Tax, result.Total

	id, err := u.repo.NextEstimateID(ctx)
	if err != nil {
		return CreateResult{}, err
	}
	rev.EstimateID = id

	e := entities.Estimate{
		ID:                id,
		EstimateNo:        entities.FormatEstimateNo(u.noPrefix, now.Year(), id),
		ProjectID:         project.ID,
		ClientID:          project.ClientID,
		Title:             firstNonEmpty(cmd.Title, project.Name, defaultEstimateTitle),
		ReceiverName:      firstNonEmpty(cmd.ReceiverName, project.ClientName),
		Memo:              strings.TrimSpace(cmd.Memo),
		BusinessState:     entities.BusinessStateOngoing,
		CurrentRevisionID: rev.ID,
		CreatedBy:         principal.ID,
		AuthorName:        principal.Name,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := u.repo.CreateWithRevision(ctx, e, rev, sections); err != nil {
		log.Printf("[estimate][usecase] create write failed estimate_id=%d err=%v", id, err)
		switch {
		case errors.Is(err, interfaces.ErrProjectTaken):
			return CreateResult{}, ErrDuplicateEstimate
		case errors.Is(err, interfaces.ErrTooManySections):
			return CreateResult{}, ErrRevisionTooLarge
		}
		return CreateResult{}, err
	}

	revisionsCreated.WithLabelValues("create").Inc()
	log.Printf("[estimate][usecase] create success estimate_id=%d estimate_no=%s revision_id=%s total=%.0f", id, e.EstimateNo, rev.ID, rev.Total)
	return CreateResult{ID: id, EstimateNo: e.EstimateNo, RevisionID: rev.ID}, nil
}

func (u *EstimateUseCase) Revise(ctx context.Context, principal entities.Principal, id int64, cmd ReviseEstimateCommand) (entities.Revision, error) {
	log.Printf("[estimate][usecase] revise start estimate_id=%d sections=%d", id, len(cmd.Sections))
	if !principal.Authenticated() {
		return entities.Revision{}, ErrUnauthorized
	}
	if len(cmd.Sections) > interfaces.MaxSectionsPerRevision {
		return entities.Revision{}, ErrRevisionTooLarge
	}

	e, err := u.loadEstimate(ctx, id)
	if err != nil {
		return entities.Revision{}, err
	}
	current, err := u.currentRevision(ctx, e)
	if err != nil {
		return entities.Revision{}, err
	}

	now := u.now()
	rev := entities.Revision{
		ID:         u.newID(),
		EstimateID: e.ID,
		RevisionNo: current.RevisionNo + 1,
		Reason:     strings.TrimSpace(cmd.Reason),
		Status:     entities.RevisionStatusDraft,
		CreatedBy:  principal.ID,
		AuthorName: principal.Name,
		CreatedAt:  now,
	}
	result, sections, err := u.prepareRevision(ctx, rev.ID, cmd.Sections)
	if err != nil {
		log.Printf("[estimate][usecase] revise calculation failed estimate_id=%d err=%v", id, err)
		return entities.Revision{}, err
	}
	rev.Subtotal, rev.Tax, rev.Total = result.Subtotal, result.Tax, result.Total

	err = u.repo.AppendRevision(ctx, interfaces.RevisionAppend{
		EstimateID:         e.ID,
		PreviousRevisionID: current.ID,
		Revision:           rev,
		Sections:           sections,
		Header: interfaces.HeaderUpdate{
			Title:        trimmedPtr(cmd.Title),
			ReceiverName: trimmedPtr(cmd.ReceiverName),
			Memo:         trimmedPtr(cmd.Memo),
		},
		UpdatedAt: now,
	})
	if err != nil {
		log.Printf("[estimate][usecase] revise write failed estimate_id=%d revision_no=%d err=%v", id, rev.RevisionNo, err)
		switch {
		case errors.Is(err, interfaces.ErrConcurrentUpdate):
			return entities.Revision{}, ErrConcurrentRevision
		case errors.Is(err, interfaces.ErrTooManySections):
			return entities.Revision{}, ErrRevisionTooLarge
		}
		return entities.Revision{}, err
	}

	revisionsCreated.WithLabelValues("revise").Inc()
	log.Printf("[estimate][usecase] revise success estimate_id=%d locked_revision_no=%d revision_no=%d total=%.0f", id, current.RevisionNo, rev.RevisionNo, rev.Total)
	return rev, nil
}

func (u *EstimateUseCase) UpdateBusinessState(ctx context.Context, principal entities.Principal, id int64, state entities.BusinessState) (entities.Estimate, error) {
	if !principal.Authenticated() {
		return entities.Estimate{}, ErrUnauthorized
	}
	if !state.Valid() {
		return entities.Estimate{}, ErrInvalidBusinessState
	}
	if _, err := u.loadEstimate(ctx, id); err != nil {
		return entities.Estimate{}, err
	}

	updated, err := u.repo.UpdateBusinessState(ctx, id, state, u.now())
	if err != nil {
		return entities.Estimate{}, err
	}
	if updated.ID == 0 {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	log.Printf("[estimate][usecase] business state updated estimate_id=%d state=%s", id, state)
	return updated, nil
}

// Delete soft-deletes an estimate and releases its project for a new one.
func (u *EstimateUseCase) Delete(ctx context.Context, principal entities.Principal, id int64) error {
	if !principal.Authenticated() {
		return ErrUnauthorized
	}
	e, err := u.loadEstimate(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.SoftDelete(ctx, e, u.now()); err != nil {
		if errors.Is(err, interfaces.ErrConcurrentUpdate) {
			return ErrEstimateNotFound
		}
		return err
	}
	log.Printf("[estimate][usecase] soft deleted estimate_id=%d by=%d", id, principal.ID)
	return nil
}

// Purge removes an estimate with every revision and section. It is the
// administrative path and also accepts soft-deleted estimates.
func (u *EstimateUseCase) Purge(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e.ID == 0 {
		return ErrEstimateNotFound
	}
	if err := u.repo.Purge(ctx, id); err != nil {
		return err
	}
	log.Printf("[estimate][usecase] purged estimate_id=%d estimate_no=%s", id, e.EstimateNo)
	return nil
}

// Preview runs the calculation without touching the store.
func (u *EstimateUseCase) Preview(_ context.Context, sections []entities.Section) (calculation.Result, error) {
	result, err := calculation.Aggregate(sections)
	if err != nil {
		return calculation.Result{}, classifyCalculationError(err)
	}
	return result, nil
}

// prepareRevision calculates the submitted tree, verifies product references
// and stamps ids so the result can be written as-is.
func (u *EstimateUseCase) prepareRevision(ctx context.Context, revisionID string, input []entities.Section) (calculation.Result, []entities.Section, error) {
	result, err := calculation.Aggregate(input)
	if err != nil {
		return calculation.Result{}, nil, classifyCalculationError(err)
	}

	sections, err := u.resolveCatalogRefs(ctx, result.Sections)
	if err != nil {
		return calculation.Result{}, nil, err
	}

	for i := range sections {
		sec := &sections[i]
		sec.ID = u.newID()
		sec.RevisionID = revisionID
		for j := range sec.Lines {
			ln := &sec.Lines[j]
			ln.ID = u.newID()
			if strings.TrimSpace(ln.Unit) == "" {
				ln.Unit = defaultLineUnit
			}
			if ln.SourceType == "" {
				ln.SourceType = entities.SourceTypeNone
			}
			if ln.PriceType == "" {
				ln.PriceType = entities.PriceTypeManual
			}
		}
	}
	return result, sections, nil
}

// resolveCatalogRefs checks every PRODUCT reference in one batch lookup.
// References to products that no longer exist are downgraded to NONE; the
// snapshot values and amounts are kept.
func (u *EstimateUseCase) resolveCatalogRefs(ctx context.Context, sections []entities.Section) ([]entities.Section, error) {
	seen := map[int64]struct{}{}
	var ids []int64
	for _, sec := range sections {
		for _, ln := range sec.Lines {
			if ln.SourceType != entities.SourceTypeProduct || ln.SourceID == nil {
				continue
			}
			if _, ok := seen[*ln.SourceID]; ok {
				continue
			}
			seen[*ln.SourceID] = struct{}{}
			ids = append(ids, *ln.SourceID)
		}
	}

	var existing map[int64]struct{}
	if len(ids) > 0 {
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		var err error
		existing, err = u.catalog.ExistingProductIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("check product references: %w", err)
		}
	}

	dropped := 0
	for i := range sections {
		for j := range sections[i].Lines {
			ln := &sections[i].Lines[j]
			if ln.SourceType != entities.SourceTypeProduct {
				continue
			}
			if ln.SourceID != nil {
				if _, ok := existing[*ln.SourceID]; ok {
					continue
				}
				dropped++
				log.Printf("[estimate][usecase] dropping missing product reference product_id=%d line=%q", *ln.SourceID, ln.Name)
			}
			ln.SourceType = entities.SourceTypeNone
			ln.SourceID = nil
		}
	}
	if dropped > 0 {
		catalogRefsDropped.Add(float64(dropped))
	}
	return sections, nil
}

func (u *EstimateUseCase) loadEstimate(ctx context.Context, id int64) (entities.Estimate, error) {
	if id <= 0 {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == 0 || e.IsDeleted() {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) currentRevision(ctx context.Context, e entities.Estimate) (entities.Revision, error) {
	if e.CurrentRevisionID == "" {
		log.Printf("[estimate][usecase] corrupt state: empty current_revision_id estimate_id=%d", e.ID)
		return entities.Revision{}, ErrCorruptState
	}
	rev, err := u.repo.GetRevision(ctx, e.CurrentRevisionID)
	if err != nil {
		return entities.Revision{}, err
	}
	if rev.ID == "" {
		log.Printf("[estimate][usecase] corrupt state: dangling current_revision_id estimate_id=%d revision_id=%s", e.ID, e.CurrentRevisionID)
		return entities.Revision{}, ErrCorruptState
	}
	return rev, nil
}

func classifyCalculationError(err error) error {
	var fe *formula.Error
	if errors.As(err, &fe) {
		formulaErrors.WithLabelValues(fe.Kind.String()).Inc()
		return err
	}
	if errors.Is(err, calculation.ErrUnknownSectionType) {
		return fmt.Errorf("%w: %v", ErrInvalidSections, err)
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}
