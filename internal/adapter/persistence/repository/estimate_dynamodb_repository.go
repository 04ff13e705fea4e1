package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"estimate_service/internal/domain/entities"
	"estimate_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EstimateDynamoRepository persists estimates, revisions and sections in
// DynamoDB.
//
// Table requirements:
//   - estimates: PK id (N), GSI project_id-index
//   - estimate_revisions: PK id (S), GSI estimate_id-index (estimate_id, revision_no)
//   - estimate_sections: PK revision_id (S), SK section_key (S)
//   - counters: PK name (S); holds the id sequence and project guards
//
// Create and revise are single TransactWriteItems calls, so a failed write
// never leaves current_revision_id pointing at a partial revision.

type EstimateDynamoRepository struct {
	ddb    DynamoAPI
	tables TableNames
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb DynamoAPI) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:    ddb,
		tables: TableNamesFromEnv(),
	}
}

// NextEstimateID increments the "estimates" sequence in the counters table.
func (r *EstimateDynamoRepository) NextEstimateID(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tables.Counters),
		Key:                      stringKey("name", estimateSequenceName),
		UpdateExpression:         aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{"#value": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("next estimate id: %w", err)
	}
	n, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("next estimate id: counter value missing")
	}
	id, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("next estimate id: %w", err)
	}
	return id, nil
}

// ExistsForProject reports whether a live estimate claims the project.
func (r *EstimateDynamoRepository) ExistsForProject(ctx context.Context, projectID int64) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Counters),
		Key:            stringKey("name", projectGuardName(projectID)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("project guard lookup: %w", err)
	}
	return len(out.Item) > 0, nil
}

// CreateWithRevision writes, in one transaction: the project guard, the
// estimate header, revision #1 and its sections.
func (r *EstimateDynamoRepository) CreateWithRevision(ctx context.Context, e entities.Estimate, rev entities.Revision, sections []entities.Section) error {
	if len(sections) > interfaces.MaxSectionsPerRevision {
		return interfaces.ErrTooManySections
	}

	guard, err := attributevalue.MarshalMap(projectGuardItem{
		Name:       projectGuardName(e.ProjectID),
		EstimateID: e.ID,
		CreatedAt:  formatTime(e.CreatedAt),
	})
	if err != nil {
		return err
	}
	header, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return err
	}
	revPut, err := r.revisionPut(rev)
	if err != nil {
		return err
	}
	sectionPuts, err := r.sectionPuts(rev.ID, sections)
	if err != nil {
		return err
	}

	items := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:                aws.String(r.tables.Counters),
			Item:                     guard,
			ConditionExpression:      aws.String("attribute_not_exists(#name)"),
			ExpressionAttributeNames: map[string]string{"#name": "name"},
		}},
		{Put: &types.Put{
			TableName:                aws.String(r.tables.Estimates),
			Item:                     header,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}},
		revPut,
	}
	items = append(items, sectionPuts...)

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if failed, ok := canceledConditions(err); ok && anyFailed(failed, 0) {
			return interfaces.ErrProjectTaken
		}
		return fmt.Errorf("create estimate %d: %w", e.ID, err)
	}
	return nil
}

// AppendRevision locks the previous revision, writes the new one with its
// sections and repoints the estimate, all conditioned on the estimate still
// pointing at change.PreviousRevisionID.
func (r *EstimateDynamoRepository) AppendRevision(ctx context.Context, change interfaces.RevisionAppend) error {
	if len(change.Sections) > interfaces.MaxSectionsPerRevision {
		return interfaces.ErrTooManySections
	}

	updateExpr, names, values := headerUpdateExpression(change)
	revPut, err := r.revisionPut(change.Revision)
	if err != nil {
		return err
	}
	sectionPuts, err := r.sectionPuts(change.Revision.ID, change.Sections)
	if err != nil {
		return err
	}

	items := []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:                 aws.String(r.tables.Estimates),
			Key:                       numberKey("id", change.EstimateID),
			UpdateExpression:          aws.String(updateExpr),
			ConditionExpression:       aws.String("#current = :prev AND attribute_not_exists(#deleted_at)"),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		}},
		{Update: &types.Update{
			TableName:           aws.String(r.tables.Revisions),
			Key:                 stringKey("id", change.PreviousRevisionID),
			UpdateExpression:    aws.String("SET #status = :locked"),
			ConditionExpression: aws.String("attribute_exists(#id) AND #status <> :locked"),
			ExpressionAttributeNames: map[string]string{
				"#id":     "id",
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":locked": &types.AttributeValueMemberS{Value: string(entities.RevisionStatusLocked)},
			},
		}},
		revPut,
	}
	items = append(items, sectionPuts...)

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if failed, ok := canceledConditions(err); ok && anyFailed(failed, 0, 1) {
			return interfaces.ErrConcurrentUpdate
		}
		return fmt.Errorf("append revision %d to estimate %d: %w", change.Revision.RevisionNo, change.EstimateID, err)
	}
	return nil
}

// headerUpdateExpression repoints the estimate and applies header edits.
// Blank edits remove the attribute.
func headerUpdateExpression(change interfaces.RevisionAppend) (string, map[string]string, map[string]types.AttributeValue) {
	names := map[string]string{
		"#current":    "current_revision_id",
		"#updated_at": "updated_at",
		"#deleted_at": "deleted_at",
	}
	values := map[string]types.AttributeValue{
		":prev":       &types.AttributeValueMemberS{Value: change.PreviousRevisionID},
		":next":       &types.AttributeValueMemberS{Value: change.Revision.ID},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(change.UpdatedAt)},
	}
	set := "SET #current = :next, #updated_at = :updated_at"
	remove := ""

	for _, f := range []struct {
		attr  string
		value *string
	}{
		{"title", change.Header.Title},
		{"receiver_name", change.Header.ReceiverName},
		{"memo", change.Header.Memo},
	} {
		if f.value == nil {
			continue
		}
		names["#"+f.attr] = f.attr
		if *f.value == "" {
			if remove != "" {
				remove += ", "
			}
			remove += "#" + f.attr
			continue
		}
		values[":"+f.attr] = &types.AttributeValueMemberS{Value: *f.value}
		set += ", #" + f.attr + " = :" + f.attr
	}

	if remove != "" {
		return set + " REMOVE " + remove, names, values
	}
	return set, names, values
}

func (r *EstimateDynamoRepository) revisionPut(rev entities.Revision) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toRevisionItem(rev))
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(r.tables.Revisions),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}, nil
}

func (r *EstimateDynamoRepository) sectionPuts(revisionID string, sections []entities.Section) ([]types.TransactWriteItem, error) {
	out := make([]types.TransactWriteItem, 0, len(sections))
	for _, s := range sections {
		av, err := attributevalue.MarshalMap(toSectionItem(revisionID, s))
		if err != nil {
			return nil, err
		}
		out = append(out, types.TransactWriteItem{Put: &types.Put{
			TableName: aws.String(r.tables.Sections),
			Item:      av,
		}})
	}
	return out, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Estimates),
		Key:            numberKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

// List scans live estimates, optionally restricted to one business state.
func (r *EstimateDynamoRepository) List(ctx context.Context, businessState entities.BusinessState) ([]entities.Estimate, error) {
	filter := "attribute_not_exists(#deleted_at)"
	names := map[string]string{"#deleted_at": "deleted_at"}
	var values map[string]types.AttributeValue
	if businessState != "" {
		filter += " AND #business_state = :state"
		names["#business_state"] = "business_state"
		values = map[string]types.AttributeValue{
			":state": &types.AttributeValueMemberS{Value: string(businessState)},
		}
	}

	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tables.Estimates),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})

	var out []entities.Estimate
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan estimates: %w", err)
		}
		var items []estimateItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromEstimateItem(it))
		}
	}
	return out, nil
}

func (r *EstimateDynamoRepository) UpdateBusinessState(ctx context.Context, id int64, state entities.BusinessState, now time.Time) (entities.Estimate, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tables.Estimates),
		Key:                 numberKey("id", id),
		UpdateExpression:    aws.String("SET #business_state = :state, #updated_at = :updated_at"),
		ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#deleted_at)"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#business_state": "business_state",
			"#updated_at":     "updated_at",
			"#deleted_at":     "deleted_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":state":      &types.AttributeValueMemberS{Value: string(state)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(now)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimate{}, nil
		}
		return entities.Estimate{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Estimate{}, nil
	}
	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

// SoftDelete stamps deleted_at and releases the project guard together.
func (r *EstimateDynamoRepository) SoftDelete(ctx context.Context, e entities.Estimate, now time.Time) error {
	stamp := &types.AttributeValueMemberS{Value: formatTime(now)}
	items := []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:           aws.String(r.tables.Estimates),
			Key:                 numberKey("id", e.ID),
			UpdateExpression:    aws.String("SET #deleted_at = :now, #updated_at = :now"),
			ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#deleted_at)"),
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#deleted_at": "deleted_at",
				"#updated_at": "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{":now": stamp},
		}},
		{Delete: r.releaseGuard(e.ProjectID, e.ID)},
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if failed, ok := canceledConditions(err); ok && anyFailed(failed, 0, 1) {
			return interfaces.ErrConcurrentUpdate
		}
		return fmt.Errorf("soft delete estimate %d: %w", e.ID, err)
	}
	return nil
}

// releaseGuard deletes the project guard only if it belongs to estimateID.
func (r *EstimateDynamoRepository) releaseGuard(projectID, estimateID int64) *types.Delete {
	return &types.Delete{
		TableName:           aws.String(r.tables.Counters),
		Key:                 stringKey("name", projectGuardName(projectID)),
		ConditionExpression: aws.String("attribute_not_exists(#name) OR #estimate_id = :id"),
		ExpressionAttributeNames: map[string]string{
			"#name":        "name",
			"#estimate_id": "estimate_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberN{Value: strconv.FormatInt(estimateID, 10)},
		},
	}
}

// Purge hard-deletes sections, revisions, the guard and the header, in that
// order, so an interrupted purge can simply be re-run.
func (r *EstimateDynamoRepository) Purge(ctx context.Context, id int64) error {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e.ID == 0 {
		return nil
	}

	revs, err := r.ListRevisions(ctx, id)
	if err != nil {
		return err
	}

	var revisionDeletes []types.WriteRequest
	for _, rev := range revs {
		keys, err := r.sectionKeys(ctx, rev.ID)
		if err != nil {
			return err
		}
		sectionDeletes := make([]types.WriteRequest, 0, len(keys))
		for _, k := range keys {
			sectionDeletes = append(sectionDeletes, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: k}})
		}
		if err := batchWriteAll(ctx, r.ddb, r.tables.Sections, sectionDeletes); err != nil {
			return err
		}
		revisionDeletes = append(revisionDeletes, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: stringKey("id", rev.ID)}})
	}
	if err := batchWriteAll(ctx, r.ddb, r.tables.Revisions, revisionDeletes); err != nil {
		return err
	}

	guard := r.releaseGuard(e.ProjectID, e.ID)
	_, err = r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 guard.TableName,
		Key:                       guard.Key,
		ConditionExpression:       guard.ConditionExpression,
		ExpressionAttributeNames:  guard.ExpressionAttributeNames,
		ExpressionAttributeValues: guard.ExpressionAttributeValues,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if !errors.As(err, &cfe) {
			return fmt.Errorf("purge guard for estimate %d: %w", id, err)
		}
		// Project already claimed by a newer estimate.
	}

	if _, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tables.Estimates),
		Key:       numberKey("id", id),
	}); err != nil {
		return fmt.Errorf("purge estimate %d: %w", id, err)
	}
	log.Printf("[estimate][repository] purged estimate_id=%d revisions=%d", id, len(revs))
	return nil
}

func (r *EstimateDynamoRepository) sectionKeys(ctx context.Context, revisionID string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Sections),
		KeyConditionExpression: aws.String("#revision_id = :rid"),
		ProjectionExpression:   aws.String("#revision_id, #section_key"),
		ExpressionAttributeNames: map[string]string{
			"#revision_id": "revision_id",
			"#section_key": "section_key",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: revisionID},
		},
	})

	var keys []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query section keys: %w", err)
		}
		keys = append(keys, page.Items...)
	}
	return keys, nil
}

func (r *EstimateDynamoRepository) GetRevision(ctx context.Context, id string) (entities.Revision, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Revisions),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Revision{}, err
	}
	if len(out.Item) == 0 {
		return entities.Revision{}, nil
	}

	var it revisionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Revision{}, err
	}
	return fromRevisionItem(it), nil
}

// GetRevisions batch-loads revisions by id. Missing ids are absent from the map.
func (r *EstimateDynamoRepository) GetRevisions(ctx context.Context, ids []string) (map[string]entities.Revision, error) {
	seen := make(map[string]struct{}, len(ids))
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, stringKey("id", id))
	}

	out := make(map[string]entities.Revision, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	raw, err := batchGetAll(ctx, r.ddb, r.tables.Revisions, keys, nil, nil)
	if err != nil {
		return nil, err
	}
	var items []revisionItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = fromRevisionItem(it)
	}
	return out, nil
}

// ListRevisions returns every revision of an estimate, newest first.
func (r *EstimateDynamoRepository) ListRevisions(ctx context.Context, estimateID int64) ([]entities.Revision, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:                aws.String(r.tables.Revisions),
		IndexName:                aws.String(revisionsEstimateIDIndex),
		KeyConditionExpression:   aws.String("#estimate_id = :eid"),
		ExpressionAttributeNames: map[string]string{"#estimate_id": "estimate_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberN{Value: strconv.FormatInt(estimateID, 10)},
		},
		ScanIndexForward: aws.Bool(false),
	})

	var out []entities.Revision
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query revisions: %w", err)
		}
		var items []revisionItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromRevisionItem(it))
		}
	}
	return out, nil
}

// ListSections returns a revision's sections in section order.
func (r *EstimateDynamoRepository) ListSections(ctx context.Context, revisionID string) ([]entities.Section, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:                aws.String(r.tables.Sections),
		KeyConditionExpression:   aws.String("#revision_id = :rid"),
		ExpressionAttributeNames: map[string]string{"#revision_id": "revision_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: revisionID},
		},
		ConsistentRead: aws.Bool(true),
	})

	var out []entities.Section
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query sections: %w", err)
		}
		var items []sectionItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromSectionItem(it))
		}
	}
	return out, nil
}
