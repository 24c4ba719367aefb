package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
	pkgerrors "stellium-backend/pkg/errors"
	"stellium-backend/pkg/utils"
)

// JournalEntryRepository implements ports.JournalEntryRepository using
// DynamoDB. Single-table layout:
//
//	PK = USER#<userID>, SK = JOURNAL#<dayKey>#<entryID>
//	GSI1PK = JOURNALID#<entryID>, GSI1SK = METADATA
type JournalEntryRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewJournalEntryRepository creates a new JournalEntryRepository
func NewJournalEntryRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.JournalEntryRepository {
	return &JournalEntryRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// journalItem represents the DynamoDB item structure for a journal entry
type journalItem struct {
	PK            string         `dynamodbav:"PK"`
	SK            string         `dynamodbav:"SK"`
	GSI1PK        string         `dynamodbav:"GSI1PK"`
	GSI1SK        string         `dynamodbav:"GSI1SK"`
	EntityType    string         `dynamodbav:"EntityType"`
	EntryID       string         `dynamodbav:"EntryID"`
	UserID        string         `dynamodbav:"UserID"`
	Text          string         `dynamodbav:"Text"`
	WordCount     int            `dynamodbav:"WordCount"`
	Enriched      bool           `dynamodbav:"Enriched"`
	Keywords      []string       `dynamodbav:"Keywords,omitempty"`
	EmotionCounts map[string]int `dynamodbav:"EmotionCounts,omitempty"`
	Sentiment     *float64       `dynamodbav:"Sentiment,omitempty"`
	DayKey        string         `dynamodbav:"DayKey"`
	WrittenAt     string         `dynamodbav:"WrittenAt"`
	CreatedAt     string         `dynamodbav:"CreatedAt"`
	UpdatedAt     string         `dynamodbav:"UpdatedAt"`
	DeletedAt     string         `dynamodbav:"DeletedAt,omitempty"`
	Version       int            `dynamodbav:"Version"`
}

// Save persists a journal entry to DynamoDB
func (r *JournalEntryRepository) Save(ctx context.Context, entry *entities.JournalEntry) error {
	item := journalItem{
		PK:         fmt.Sprintf("USER#%s", entry.UserID()),
		SK:         fmt.Sprintf("JOURNAL#%s#%s", entry.DayKey().String(), entry.ID().String()),
		GSI1PK:     fmt.Sprintf("JOURNALID#%s", entry.ID().String()),
		GSI1SK:     "METADATA",
		EntityType: "JOURNAL",
		EntryID:    entry.ID().String(),
		UserID:     entry.UserID(),
		Text:       entry.Text(),
		WordCount:  entry.WordCount(),
		Enriched:   entry.IsEnriched(),
		DayKey:     entry.DayKey().String(),
		WrittenAt:  entry.WrittenAt().Format(time.RFC3339Nano),
		CreatedAt:  entry.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:  entry.UpdatedAt().Format(time.RFC3339Nano),
		Version:    entry.Version(),
	}
	if enrichment := entry.Enrichment(); enrichment != nil {
		item.Keywords = enrichment.Keywords
		item.EmotionCounts = enrichment.EmotionCounts
		item.Sentiment = enrichment.Sentiment
	}
	if deletedAt := entry.DeletedAt(); deletedAt != nil {
		item.DeletedAt = deletedAt.Format(time.RFC3339Nano)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal journal entry", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("failed to save journal entry",
			zap.Error(err),
			zap.String("entry_id", entry.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save journal entry", err)
	}

	return nil
}

// GetByID retrieves a journal entry by its ID via GSI1
func (r *JournalEntryRepository) GetByID(ctx context.Context, userID string, id valueobjects.EntryID) (*entities.JournalEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("JOURNALID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query journal entry", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("journal entry")
	}

	var item journalItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal journal entry", err)
	}
	if item.UserID != userID {
		return nil, pkgerrors.NewNotFoundError("journal entry")
	}

	return journalFromItem(item)
}

// GetRecent retrieves the user's entries for the trailing window,
// newest first, soft-delete filtered
func (r *JournalEntryRepository) GetRecent(ctx context.Context, userID string, days int) ([]*entities.JournalEntry, error) {
	cutoff := valueobjects.NewDayKey(utils.DaysAgo(time.Now().UTC(), days-1))

	keyEx := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID)))
	keyEx = keyEx.And(expression.Key("SK").Between(
		expression.Value(fmt.Sprintf("JOURNAL#%s", cutoff.String())),
		expression.Value("JOURNAL#~"),
	))
	filter := expression.AttributeNotExists(expression.Name("DeletedAt"))

	return r.queryEntries(ctx, keyEx, filter)
}

// GetUnenriched retrieves entries still waiting for NLP enrichment,
// oldest first so backfill drains in write order
func (r *JournalEntryRepository) GetUnenriched(ctx context.Context, userID string, limit int) ([]*entities.JournalEntry, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID)))
	keyEx = keyEx.And(expression.Key("SK").BeginsWith("JOURNAL#"))
	filter := expression.Name("Enriched").Equal(expression.Value(false)).
		And(expression.AttributeNotExists(expression.Name("DeletedAt")))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyEx).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build journal query", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query unenriched entries", err)
	}

	entries := r.unmarshalEntries(result.Items)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// List pages through the user's entries, newest first
func (r *JournalEntryRepository) List(ctx context.Context, userID string, limit int, nextToken string) ([]*entities.JournalEntry, string, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID)))
	keyEx = keyEx.And(expression.Key("SK").BeginsWith("JOURNAL#"))
	filter := expression.AttributeNotExists(expression.Name("DeletedAt"))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyEx).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, "", pkgerrors.NewDatabaseError("build journal query", err)
	}

	startKey, err := decodePageToken(nextToken)
	if err != nil {
		return nil, "", pkgerrors.NewValidationError("invalid pagination token")
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(int32(limit)),
		ExclusiveStartKey:         startKey,
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, "", pkgerrors.NewDatabaseError("list journal entries", err)
	}

	entries := r.unmarshalEntries(result.Items)

	token, err := encodePageToken(result.LastEvaluatedKey)
	if err != nil {
		return nil, "", pkgerrors.NewDatabaseError("encode pagination token", err)
	}

	return entries, token, nil
}

// queryEntries runs a key condition to exhaustion, draining pages
func (r *JournalEntryRepository) queryEntries(ctx context.Context, keyEx expression.KeyConditionBuilder, filter expression.ConditionBuilder) ([]*entities.JournalEntry, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(keyEx).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build journal query", err)
	}

	var entries []*entities.JournalEntry
	var lastKey map[string]types.AttributeValue
	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         lastKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query journal entries", err)
		}

		entries = append(entries, r.unmarshalEntries(result.Items)...)

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return entries, nil
}

// unmarshalEntries converts raw items, skipping unreadable ones
func (r *JournalEntryRepository) unmarshalEntries(items []map[string]types.AttributeValue) []*entities.JournalEntry {
	entries := make([]*entities.JournalEntry, 0, len(items))
	for _, raw := range items {
		var item journalItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("skipping unreadable journal item", zap.Error(err))
			continue
		}
		entry, err := journalFromItem(item)
		if err != nil {
			r.logger.Warn("skipping malformed journal item",
				zap.String("entry_id", item.EntryID),
				zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// journalFromItem reconstructs the domain entity from a raw item
func journalFromItem(item journalItem) (*entities.JournalEntry, error) {
	id, err := valueobjects.ParseEntryID(item.EntryID)
	if err != nil {
		return nil, err
	}

	var enrichment *entities.NlpEnrichment
	if item.Enriched {
		enrichment = &entities.NlpEnrichment{
			Keywords:      item.Keywords,
			EmotionCounts: item.EmotionCounts,
			Sentiment:     item.Sentiment,
		}
	}

	dayKey, err := valueobjects.ParseDayKey(item.DayKey)
	if err != nil {
		return nil, err
	}

	writtenAt, err := time.Parse(time.RFC3339Nano, item.WrittenAt)
	if err != nil {
		return nil, fmt.Errorf("invalid WrittenAt on entry %s: %w", item.EntryID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid CreatedAt on entry %s: %w", item.EntryID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid UpdatedAt on entry %s: %w", item.EntryID, err)
	}

	var deletedAt *time.Time
	if item.DeletedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, item.DeletedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid DeletedAt on entry %s: %w", item.EntryID, err)
		}
		deletedAt = &t
	}

	return entities.ReconstructJournalEntry(
		id,
		item.UserID,
		item.Text,
		enrichment,
		dayKey,
		writtenAt, createdAt, updatedAt,
		deletedAt,
		item.Version,
	)
}
