package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultEstimatesTableName = "estimates"
	defaultRevisionsTableName = "estimate_revisions"
	defaultSectionsTableName  = "estimate_sections"
	defaultProjectsTableName  = "projects"
	defaultProductsTableName  = "products"
	defaultCountersTableName  = "counters"

	estimatesProjectIDIndex  = "project_id-index"
	revisionsEstimateIDIndex = "estimate_id-index"
	estimateSequenceName     = "estimates"
	tableCreationMaxWait     = 2 * time.Minute
)

// TableNames resolves every table used by the service.
type TableNames struct {
	Estimates string
	Revisions string
	Sections  string
	Projects  string
	Products  string
	Counters  string
}

func TableNamesFromEnv() TableNames {
	return TableNames{
		Estimates: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
		Revisions: getenvDefault("REVISIONS_TABLE", defaultRevisionsTableName),
		Sections:  getenvDefault("SECTIONS_TABLE", defaultSectionsTableName),
		Projects:  getenvDefault("PROJECTS_TABLE", defaultProjectsTableName),
		Products:  getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
		Counters:  getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

// TableAdminAPI is what CreateTables needs from *dynamodb.Client.
type TableAdminAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// TableDefinitions returns the create requests for every table, on-demand
// billing. Tables owned by other services (projects, products) are included
// for local development.
func TableDefinitions(names TableNames) []*dynamodb.CreateTableInput {
	onDemand := types.BillingModePayPerRequest
	allProjection := &types.Projection{ProjectionType: types.ProjectionTypeAll}

	return []*dynamodb.CreateTableInput{
		{
			TableName:   aws.String(names.Estimates),
			BillingMode: onDemand,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeN},
				{AttributeName: aws.String("project_id"), AttributeType: types.ScalarAttributeTypeN},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{{
				IndexName:  aws.String(estimatesProjectIDIndex),
				KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String("project_id"), KeyType: types.KeyTypeHash}},
				Projection: allProjection,
			}},
		},
		{
			TableName:   aws.String(names.Revisions),
			BillingMode: onDemand,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("estimate_id"), AttributeType: types.ScalarAttributeTypeN},
				{AttributeName: aws.String("revision_no"), AttributeType: types.ScalarAttributeTypeN},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{{
				IndexName: aws.String(revisionsEstimateIDIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("estimate_id"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("revision_no"), KeyType: types.KeyTypeRange},
				},
				Projection: allProjection,
			}},
		},
		{
			TableName:   aws.String(names.Sections),
			BillingMode: onDemand,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("revision_id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("section_key"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("revision_id"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("section_key"), KeyType: types.KeyTypeRange},
			},
		},
		numericKeyTable(names.Projects),
		numericKeyTable(names.Products),
		{
			TableName:            aws.String(names.Counters),
			BillingMode:          onDemand,
			AttributeDefinitions: []types.AttributeDefinition{{AttributeName: aws.String("name"), AttributeType: types.ScalarAttributeTypeS}},
			KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("name"), KeyType: types.KeyTypeHash}},
		},
	}
}

func numericKeyTable(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:            aws.String(name),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeN}},
		KeySchema:            []types.KeySchemaElement{{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash}},
	}
}

// CreateTables creates missing tables and waits until each one is active.
// Existing tables are left untouched.
func CreateTables(ctx context.Context, api TableAdminAPI, names TableNames) error {
	waiter := dynamodb.NewTableExistsWaiter(api)
	for _, def := range TableDefinitions(names) {
		name := aws.ToString(def.TableName)
		if _, err := api.CreateTable(ctx, def); err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				log.Printf("[estimate][tables] %s already exists", name)
				continue
			}
			return fmt.Errorf("create table %s: %w", name, err)
		}
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: def.TableName}, tableCreationMaxWait); err != nil {
			return fmt.Errorf("wait for table %s: %w", name, err)
		}
		log.Printf("[estimate][tables] created %s", name)
	}
	return nil
}
