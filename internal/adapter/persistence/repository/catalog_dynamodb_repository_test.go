package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogDynamoRepository_ExistingProductIDs(t *testing.T) {
	t.Run("one batch for the whole set", func(t *testing.T) {
		calls := 0
		repo := &CatalogDynamoRepository{tables: testTables(), ddb: &fakeDynamo{batchGet: func(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
			calls++
			req := in.RequestItems["products"]
			assert.Len(t, req.Keys, 3)
			assert.Equal(t, "#id", aws.ToString(req.ProjectionExpression))
			return &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]types.AttributeValue{
				"products": {
					{"id": &types.AttributeValueMemberN{Value: "5"}},
					{"id": &types.AttributeValueMemberN{Value: "8"}},
				},
			}}, nil
		}}}

		got, err := repo.ExistingProductIDs(context.Background(), []int64{5, 8, 9, 5})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, map[int64]struct{}{5: {}, 8: {}}, got)
	})

	t.Run("empty input skips the store", func(t *testing.T) {
		repo := &CatalogDynamoRepository{tables: testTables(), ddb: &fakeDynamo{}}
		got, err := repo.ExistingProductIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("store error propagates", func(t *testing.T) {
		repo := &CatalogDynamoRepository{tables: testTables(), ddb: &fakeDynamo{batchGet: func(*dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
			return nil, errors.New("throttled")
		}}}
		_, err := repo.ExistingProductIDs(context.Background(), []int64{1})
		require.Error(t, err)
	})
}

func TestCatalogDynamoRepository_GetProject(t *testing.T) {
	t.Run("maps dates", func(t *testing.T) {
		repo := &CatalogDynamoRepository{tables: testTables(), ddb: &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, "projects", aws.ToString(in.TableName))
			return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"id":            &types.AttributeValueMemberN{Value: "3"},
				"name":          &types.AttributeValueMemberS{Value: "Tower"},
				"client_name":   &types.AttributeValueMemberS{Value: "ACME"},
				"department_id": &types.AttributeValueMemberN{Value: "9"},
				"start_date":    &types.AttributeValueMemberS{Value: "2024-04-01"},
			}}, nil
		}}}

		p, err := repo.GetProject(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Tower", p.Name)
		require.NotNil(t, p.DepartmentID)
		assert.Equal(t, int64(9), *p.DepartmentID)
		require.NotNil(t, p.StartDate)
		assert.Equal(t, 2024, p.StartDate.Year())
		assert.Nil(t, p.CreatedAt)
	})

	t.Run("missing returns zero value", func(t *testing.T) {
		repo := &CatalogDynamoRepository{tables: testTables(), ddb: &fakeDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		}}}
		p, err := repo.GetProject(context.Background(), 3)
		require.NoError(t, err)
		assert.Zero(t, p.ID)
	})
}

func TestTableDefinitions(t *testing.T) {
	defs := TableDefinitions(testTables())
	require.Len(t, defs, 6)
	names := map[string]bool{}
	for _, d := range defs {
		names[aws.ToString(d.TableName)] = true
		assert.Equal(t, types.BillingModePayPerRequest, d.BillingMode)
	}
	for _, n := range []string{"estimates", "estimate_revisions", "estimate_sections", "projects", "products", "counters"} {
		assert.True(t, names[n], n)
	}
	assert.Equal(t, revisionsEstimateIDIndex, aws.ToString(defs[1].GlobalSecondaryIndexes[0].IndexName))
}
