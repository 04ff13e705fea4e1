package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// DynamoDB hard limits.
	batchGetLimit   = 100
	batchWriteLimit = 25

	maxBatchAttempts = 5
	batchBackoff     = 50 * time.Millisecond

	conditionalCheckFailed = "ConditionalCheckFailed"
)

// DynamoAPI is the subset of *dynamodb.Client used by the repositories.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

var errUnprocessed = errors.New("dynamodb kept returning unprocessed items")

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Catalog tables written by other services may carry plain dates.
		if t, err = time.Parse(time.DateOnly, s); err != nil {
			return nil
		}
	}
	return &t
}

func numberKey(name string, v int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: &types.AttributeValueMemberN{Value: fmt.Sprint(v)}}
}

func stringKey(name, v string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: &types.AttributeValueMemberS{Value: v}}
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for len(items) > size {
		out = append(out, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}

// batchGetAll reads every key from one table, following UnprocessedKeys.
func batchGetAll(ctx context.Context, ddb DynamoAPI, table string, keys []map[string]types.AttributeValue, projection *string, names map[string]string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for _, part := range chunk(keys, batchGetLimit) {
		request := map[string]types.KeysAndAttributes{
			table: {
				Keys:                     part,
				ConsistentRead:           aws.Bool(true),
				ProjectionExpression:     projection,
				ExpressionAttributeNames: names,
			},
		}
		for attempt := 0; len(request) > 0; attempt++ {
			if attempt == maxBatchAttempts {
				return nil, fmt.Errorf("batch get %s: %w", table, errUnprocessed)
			}
			if attempt > 0 {
				if err := sleepCtx(ctx, batchBackoff*time.Duration(1<<attempt)); err != nil {
					return nil, err
				}
			}
			out, err := ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, fmt.Errorf("batch get %s: %w", table, err)
			}
			items = append(items, out.Responses[table]...)
			request = out.UnprocessedKeys
		}
	}
	return items, nil
}

// batchWriteAll applies write requests to one table in chunks of 25.
func batchWriteAll(ctx context.Context, ddb DynamoAPI, table string, writes []types.WriteRequest) error {
	for _, part := range chunk(writes, batchWriteLimit) {
		request := map[string][]types.WriteRequest{table: part}
		for attempt := 0; len(request) > 0; attempt++ {
			if attempt == maxBatchAttempts {
				return fmt.Errorf("batch write %s: %w", table, errUnprocessed)
			}
			if attempt > 0 {
				if err := sleepCtx(ctx, batchBackoff*time.Duration(1<<attempt)); err != nil {
					return err
				}
			}
			out, err := ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: request})
			if err != nil {
				return fmt.Errorf("batch write %s: %w", table, err)
			}
			request = out.UnprocessedItems
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// canceledConditions returns, per transaction item, whether its condition
// failed. ok is false when err is not a transaction cancellation.
func canceledConditions(err error) (failed []bool, ok bool) {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return nil, false
	}
	failed = make([]bool, len(tce.CancellationReasons))
	for i, r := range tce.CancellationReasons {
		failed[i] = aws.ToString(r.Code) == conditionalCheckFailed
	}
	return failed, true
}

func anyFailed(failed []bool, idx ...int) bool {
	for _, i := range idx {
		if i < len(failed) && failed[i] {
			return true
		}
	}
	return false
}
