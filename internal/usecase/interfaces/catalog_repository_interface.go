package interfaces

import (
	"context"

	"estimate_service/internal/domain/entities"
)

//go:generate mockgen -source=catalog_repository_interface.go -destination=mocks/catalog_repository_mock.go -package=mock_interfaces

// ICatalogRepository is the read-only view of data owned by other services:
// projects (for headers, defaults and filtering) and products (for
// source-reference integrity on lines).

type ICatalogRepository interface {
	GetProject(ctx context.Context, id int64) (entities.Project, error)
	GetProjects(ctx context.Context, ids []int64) (map[int64]entities.Project, error)
	// ExistingProductIDs resolves the whole id set in as few round trips as
	// the store allows and returns the subset that exists.
	ExistingProductIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error)
}
