package repository

import (
	"context"
	"fmt"

	"estimate_service/internal/domain/entities"
	"estimate_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type projectItem struct {
	ID           int64  `dynamodbav:"id"`
	Name         string `dynamodbav:"name"`
	ClientID     int64  `dynamodbav:"client_id"`
	ClientName   string `dynamodbav:"client_name"`
	DepartmentID *int64 `dynamodbav:"department_id"`
	StartDate    string `dynamodbav:"start_date"`
	CreatedAt    string `dynamodbav:"created_at"`
}

type productKeyItem struct {
	ID int64 `dynamodbav:"id"`
}

// CatalogDynamoRepository reads the projects and products tables. Both are
// owned by other services; this repository never writes to them.

type CatalogDynamoRepository struct {
	ddb    DynamoAPI
	tables TableNames
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb DynamoAPI) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:    ddb,
		tables: TableNamesFromEnv(),
	}
}

func (r *CatalogDynamoRepository) GetProject(ctx context.Context, id int64) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Projects),
		Key:       numberKey("id", id),
	})
	if err != nil {
		return entities.Project{}, fmt.Errorf("get project %d: %w", id, err)
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r *CatalogDynamoRepository) GetProjects(ctx context.Context, ids []int64) (map[int64]entities.Project, error) {
	keys := uniqueNumberKeys(ids)
	out := make(map[int64]entities.Project, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	raw, err := batchGetAll(ctx, r.ddb, r.tables.Projects, keys, nil, nil)
	if err != nil {
		return nil, err
	}
	var items []projectItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = fromProjectItem(it)
	}
	return out, nil
}

// ExistingProductIDs resolves the whole set with BatchGetItem, projecting
// only the key.
func (r *CatalogDynamoRepository) ExistingProductIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	keys := uniqueNumberKeys(ids)
	out := make(map[int64]struct{}, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	raw, err := batchGetAll(ctx, r.ddb, r.tables.Products, keys, aws.String("#id"), map[string]string{"#id": "id"})
	if err != nil {
		return nil, err
	}
	var items []productKeyItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = struct{}{}
	}
	return out, nil
}

func uniqueNumberKeys(ids []int64) []map[string]types.AttributeValue {
	seen := make(map[int64]struct{}, len(ids))
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, numberKey("id", id))
	}
	return keys
}

func fromProjectItem(it projectItem) entities.Project {
	return entities.Project{
		ID:           it.ID,
		Name:         it.Name,
		ClientID:     it.ClientID,
		ClientName:   it.ClientName,
		DepartmentID: it.DepartmentID,
		StartDate:    parseTimePtr(it.StartDate),
		CreatedAt:    parseTimePtr(it.CreatedAt),
	}
}
