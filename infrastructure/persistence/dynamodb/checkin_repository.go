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

// CheckInRepository implements ports.CheckInRepository using DynamoDB.
// Single-table layout:
//
//	PK = USER#<userID>, SK = CHECKIN#<dayKey>#<checkInID>
//	GSI1PK = CHECKINID#<checkInID>, GSI1SK = METADATA
//
// The day-key prefix in SK keeps a user's check-ins range-queryable by
// calendar day; GSI1 serves direct lookups by ID.
type CheckInRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCheckInRepository creates a new CheckInRepository
func NewCheckInRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CheckInRepository {
	return &CheckInRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// checkInItem represents the DynamoDB item structure for a check-in
type checkInItem struct {
	PK         string   `dynamodbav:"PK"`
	SK         string   `dynamodbav:"SK"`
	GSI1PK     string   `dynamodbav:"GSI1PK"`
	GSI1SK     string   `dynamodbav:"GSI1SK"`
	EntityType string   `dynamodbav:"EntityType"`
	CheckInID  string   `dynamodbav:"CheckInID"`
	UserID     string   `dynamodbav:"UserID"`
	Mood       *int     `dynamodbav:"Mood,omitempty"`
	Stress     string   `dynamodbav:"Stress,omitempty"`
	Energy     *int     `dynamodbav:"Energy,omitempty"`
	Tags       []string `dynamodbav:"Tags,omitempty"`
	Note       string   `dynamodbav:"Note,omitempty"`
	DayKey     string   `dynamodbav:"DayKey"`
	TimeOfDay  string   `dynamodbav:"TimeOfDay"`
	LoggedAt   string   `dynamodbav:"LoggedAt"`
	CreatedAt  string   `dynamodbav:"CreatedAt"`
	UpdatedAt  string   `dynamodbav:"UpdatedAt"`
	DeletedAt  string   `dynamodbav:"DeletedAt,omitempty"`
	Version    int      `dynamodbav:"Version"`
}

// Save persists a check-in to DynamoDB
func (r *CheckInRepository) Save(ctx context.Context, checkIn *entities.CheckIn) error {
	item := checkInItem{
		PK:         fmt.Sprintf("USER#%s", checkIn.UserID()),
		SK:         fmt.Sprintf("CHECKIN#%s#%s", checkIn.DayKey().String(), checkIn.ID().String()),
		GSI1PK:     fmt.Sprintf("CHECKINID#%s", checkIn.ID().String()),
		GSI1SK:     "METADATA",
		EntityType: "CHECKIN",
		CheckInID:  checkIn.ID().String(),
		UserID:     checkIn.UserID(),
		Tags:       checkIn.Tags(),
		Note:       checkIn.Note(),
		DayKey:     checkIn.DayKey().String(),
		TimeOfDay:  checkIn.TimeOfDay().String(),
		LoggedAt:   checkIn.LoggedAt().Format(time.RFC3339Nano),
		CreatedAt:  checkIn.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:  checkIn.UpdatedAt().Format(time.RFC3339Nano),
		Version:    checkIn.Version(),
	}
	if mood := checkIn.Mood(); mood != nil {
		v := mood.Int()
		item.Mood = &v
	}
	if stress := checkIn.Stress(); stress != nil {
		item.Stress = stress.String()
	}
	if energy := checkIn.Energy(); energy != nil {
		v := energy.Int()
		item.Energy = &v
	}
	if deletedAt := checkIn.DeletedAt(); deletedAt != nil {
		item.DeletedAt = deletedAt.Format(time.RFC3339Nano)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal check-in", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("failed to save check-in",
			zap.Error(err),
			zap.String("check_in_id", checkIn.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save check-in", err)
	}

	return nil
}

// GetByID retrieves a check-in by its ID via GSI1
func (r *CheckInRepository) GetByID(ctx context.Context, userID string, id valueobjects.CheckInID) (*entities.CheckIn, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("CHECKINID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query check-in", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("check-in")
	}

	var item checkInItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal check-in", err)
	}
	// ownership check: the GSI key carries only the check-in ID
	if item.UserID != userID {
		return nil, pkgerrors.NewNotFoundError("check-in")
	}

	return checkInFromItem(item)
}

// GetRecent retrieves the user's check-ins for the trailing window,
// newest first, soft-delete filtered
func (r *CheckInRepository) GetRecent(ctx context.Context, userID string, days int) ([]*entities.CheckIn, error) {
	cutoff := valueobjects.NewDayKey(utils.DaysAgo(time.Now().UTC(), days-1))

	keyEx := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID)))
	keyEx = keyEx.And(expression.Key("SK").Between(
		expression.Value(fmt.Sprintf("CHECKIN#%s", cutoff.String())),
		expression.Value("CHECKIN#~"),
	))
	filter := expression.AttributeNotExists(expression.Name("DeletedAt"))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyEx).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build check-in query", err)
	}

	var checkIns []*entities.CheckIn
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
			return nil, pkgerrors.NewDatabaseError("query recent check-ins", err)
		}

		for _, raw := range result.Items {
			var item checkInItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable check-in item", zap.Error(err))
				continue
			}
			checkIn, err := checkInFromItem(item)
			if err != nil {
				r.logger.Warn("skipping malformed check-in item",
					zap.String("check_in_id", item.CheckInID),
					zap.Error(err))
				continue
			}
			checkIns = append(checkIns, checkIn)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return checkIns, nil
}

// List pages through the user's check-ins, newest first
func (r *CheckInRepository) List(ctx context.Context, userID string, limit int, nextToken string) ([]*entities.CheckIn, string, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID)))
	keyEx = keyEx.And(expression.Key("SK").BeginsWith("CHECKIN#"))
	filter := expression.AttributeNotExists(expression.Name("DeletedAt"))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyEx).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, "", pkgerrors.NewDatabaseError("build check-in query", err)
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
		return nil, "", pkgerrors.NewDatabaseError("list check-ins", err)
	}

	checkIns := make([]*entities.CheckIn, 0, len(result.Items))
	for _, raw := range result.Items {
		var item checkInItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("skipping unreadable check-in item", zap.Error(err))
			continue
		}
		checkIn, err := checkInFromItem(item)
		if err != nil {
			r.logger.Warn("skipping malformed check-in item",
				zap.String("check_in_id", item.CheckInID),
				zap.Error(err))
			continue
		}
		checkIns = append(checkIns, checkIn)
	}

	token, err := encodePageToken(result.LastEvaluatedKey)
	if err != nil {
		return nil, "", pkgerrors.NewDatabaseError("encode pagination token", err)
	}

	return checkIns, token, nil
}

// checkInFromItem reconstructs the domain entity from a raw item
func checkInFromItem(item checkInItem) (*entities.CheckIn, error) {
	id, err := valueobjects.ParseCheckInID(item.CheckInID)
	if err != nil {
		return nil, err
	}

	var mood, energy *valueobjects.Score
	if item.Mood != nil {
		score, err := valueobjects.NewScore(*item.Mood)
		if err != nil {
			return nil, err
		}
		mood = &score
	}
	if item.Energy != nil {
		score, err := valueobjects.NewScore(*item.Energy)
		if err != nil {
			return nil, err
		}
		energy = &score
	}

	var stress *valueobjects.StressLevel
	if item.Stress != "" {
		level, err := valueobjects.ParseStressLevel(item.Stress)
		if err != nil {
			return nil, err
		}
		stress = &level
	}

	dayKey, err := valueobjects.ParseDayKey(item.DayKey)
	if err != nil {
		return nil, err
	}
	timeOfDay, err := valueobjects.ParseTimeOfDay(item.TimeOfDay)
	if err != nil {
		return nil, err
	}

	loggedAt, err := time.Parse(time.RFC3339Nano, item.LoggedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid LoggedAt on check-in %s: %w", item.CheckInID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid CreatedAt on check-in %s: %w", item.CheckInID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid UpdatedAt on check-in %s: %w", item.CheckInID, err)
	}

	var deletedAt *time.Time
	if item.DeletedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, item.DeletedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid DeletedAt on check-in %s: %w", item.CheckInID, err)
		}
		deletedAt = &t
	}

	return entities.ReconstructCheckIn(
		id,
		item.UserID,
		mood, stress, energy,
		item.Tags,
		item.Note,
		dayKey,
		timeOfDay,
		loggedAt, createdAt, updatedAt,
		deletedAt,
		item.Version,
	)
}
