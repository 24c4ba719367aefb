package dynamodb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/insights"
	pkgerrors "stellium-backend/pkg/errors"
)

// cacheTTL bounds how long a stale bundle can linger. Keys already
// guarantee correctness; TTL only reclaims storage.
const cacheTTL = 7 * 24 * time.Hour

// InsightCacheStore implements ports.InsightCacheStore using DynamoDB.
// Layout: PK = USER#<userID>, SK = INSIGHTS#<sha256(key)[:16]>. The
// full cache key is stored on the item and compared on read.
type InsightCacheStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewInsightCacheStore creates a new InsightCacheStore
func NewInsightCacheStore(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.InsightCacheStore {
	return &InsightCacheStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// cacheItem represents the DynamoDB item structure for a cached bundle
type cacheItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
	CacheKey   string `dynamodbav:"CacheKey"`
	Bundle     string `dynamodbav:"Bundle"`
	ExpiresAt  int64  `dynamodbav:"ExpiresAt"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// Get retrieves a cached bundle; found is false on a miss
func (s *InsightCacheStore) Get(ctx context.Context, userID, key string) (*insights.InsightBundle, bool, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", userID)},
			"SK": &types.AttributeValueMemberS{Value: cacheSortKey(key)},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		return nil, false, pkgerrors.NewCacheError("get insight bundle", err)
	}
	if result.Item == nil {
		return nil, false, nil
	}

	var item cacheItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, false, pkgerrors.NewCacheError("unmarshal insight bundle", err)
	}
	// hashed sort keys can collide; the full key decides
	if item.CacheKey != key {
		return nil, false, nil
	}
	// TTL deletion is lazy on the DynamoDB side
	if item.ExpiresAt > 0 && time.Now().Unix() > item.ExpiresAt {
		return nil, false, nil
	}

	var bundle insights.InsightBundle
	if err := json.Unmarshal([]byte(item.Bundle), &bundle); err != nil {
		s.logger.Warn("discarding unreadable cached bundle",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, false, nil
	}

	return &bundle, true, nil
}

// Set stores a bundle under the key, last write wins
func (s *InsightCacheStore) Set(ctx context.Context, userID, key string, bundle *insights.InsightBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return pkgerrors.NewCacheError("marshal insight bundle", err)
	}

	now := time.Now()
	item := cacheItem{
		PK:         fmt.Sprintf("USER#%s", userID),
		SK:         cacheSortKey(key),
		EntityType: "INSIGHT_CACHE",
		UserID:     userID,
		CacheKey:   key,
		Bundle:     string(payload),
		ExpiresAt:  now.Add(cacheTTL).Unix(),
		CreatedAt:  now.Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewCacheError("marshal cache item", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return pkgerrors.NewCacheError("put insight bundle", err)
	}

	return nil
}

// cacheSortKey hashes the cache key to keep the sort key short
func cacheSortKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "INSIGHTS#" + hex.EncodeToString(sum[:])[:16]
}
