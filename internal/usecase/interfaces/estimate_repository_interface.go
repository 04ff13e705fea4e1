package interfaces

import (
	"context"
	"errors"
	"time"

	"estimate_service/internal/domain/entities"
)

//go:generate mockgen -source=estimate_repository_interface.go -destination=mocks/estimate_repository_mock.go -package=mock_interfaces

// Store-level conditions surfaced by repository implementations.
var (
	// ErrProjectTaken means another non-deleted estimate already claims the project.
	ErrProjectTaken = errors.New("project already has an estimate")
	// ErrConcurrentUpdate means the estimate changed between read and write:
	// its current-revision pointer moved or it was deleted.
	ErrConcurrentUpdate = errors.New("estimate changed concurrently")
	// ErrTooManySections means a revision does not fit in one atomic write.
	ErrTooManySections = errors.New("too many sections for a single revision")
)

// MaxSectionsPerRevision keeps a revision write inside one DynamoDB
// transaction (100 items, of which up to 4 are headers and guards).
const MaxSectionsPerRevision = 96

// HeaderUpdate carries optional header edits applied together with a new
// revision. A nil field is left untouched; an empty string clears the field.
type HeaderUpdate struct {
	Title        *string
	ReceiverName *string
	Memo         *string
}

// RevisionAppend describes the lock-current/create-new/repoint unit of work.
type RevisionAppend struct {
	EstimateID         int64
	PreviousRevisionID string
	Revision           entities.Revision
	Sections           []entities.Section
	Header             HeaderUpdate
	UpdatedAt          time.Time
}

// IEstimateRepository abstracts DynamoDB persistence for estimates, their
// revisions and the sections/lines owned by each revision.
//
// Lookups return a zero value (empty ID) and a nil error when the record does
// not exist, mirroring GetItem semantics.
//
// Atomicity:
//   - CreateWithRevision and AppendRevision are all-or-nothing.
//   - AppendRevision only succeeds while the estimate still points at
//     PreviousRevisionID, which serializes concurrent revisions.

type IEstimateRepository interface {
	NextEstimateID(ctx context.Context) (int64, error)
	ExistsForProject(ctx context.Context, projectID int64) (bool, error)

	CreateWithRevision(ctx context.Context, e entities.Estimate, rev entities.Revision, sections []entities.Section) error
	AppendRevision(ctx context.Context, change RevisionAppend) error

	GetByID(ctx context.Context, id int64) (entities.Estimate, error)
	List(ctx context.Context, businessState entities.BusinessState) ([]entities.Estimate, error)
	UpdateBusinessState(ctx context.Context, id int64, state entities.BusinessState, now time.Time) (entities.Estimate, error)
	SoftDelete(ctx context.Context, e entities.Estimate, now time.Time) error
	Purge(ctx context.Context, id int64) error

	GetRevision(ctx context.Context, id string) (entities.Revision, error)
	GetRevisions(ctx context.Context, ids []string) (map[string]entities.Revision, error)
	ListRevisions(ctx context.Context, estimateID int64) ([]entities.Revision, error)
	ListSections(ctx context.Context, revisionID string) ([]entities.Section, error)
}
