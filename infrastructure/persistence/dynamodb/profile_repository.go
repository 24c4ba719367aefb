package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
	pkgerrors "stellium-backend/pkg/errors"
)

// ProfileRepository implements ports.ProfileRepository using DynamoDB.
// A user has exactly one profile item: PK = USER#<userID>, SK = PROFILE.
type ProfileRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProfileRepository {
	return &ProfileRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// profileItem represents the DynamoDB item structure for a profile
type profileItem struct {
	PK             string   `dynamodbav:"PK"`
	SK             string   `dynamodbav:"SK"`
	EntityType     string   `dynamodbav:"EntityType"`
	UserID         string   `dynamodbav:"UserID"`
	DisplayName    string   `dynamodbav:"DisplayName,omitempty"`
	Timezone       string   `dynamodbav:"Timezone"`
	BirthDate      string   `dynamodbav:"BirthDate,omitempty"`
	BirthTime      string   `dynamodbav:"BirthTime,omitempty"`
	BirthLatitude  *float64 `dynamodbav:"BirthLatitude,omitempty"`
	BirthLongitude *float64 `dynamodbav:"BirthLongitude,omitempty"`
	BirthTimezone  string   `dynamodbav:"BirthTimezone,omitempty"`
	BirthLocation  string   `dynamodbav:"BirthLocation,omitempty"`
	CreatedAt      string   `dynamodbav:"CreatedAt"`
	UpdatedAt      string   `dynamodbav:"UpdatedAt"`
}

// Save persists a profile to DynamoDB
func (r *ProfileRepository) Save(ctx context.Context, profile *entities.Profile) error {
	item := profileItem{
		PK:          fmt.Sprintf("USER#%s", profile.UserID()),
		SK:          "PROFILE",
		EntityType:  "PROFILE",
		UserID:      profile.UserID(),
		DisplayName: profile.DisplayName(),
		Timezone:    profile.Timezone(),
		CreatedAt:   profile.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:   profile.UpdatedAt().Format(time.RFC3339Nano),
	}
	if birth := profile.BirthData(); birth != nil {
		item.BirthDate = birth.Date
		item.BirthTime = birth.Time
		item.BirthLatitude = aws.Float64(birth.Latitude)
		item.BirthLongitude = aws.Float64(birth.Longitude)
		item.BirthTimezone = birth.Timezone
		item.BirthLocation = birth.Location
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal profile", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("failed to save profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID()),
		)
		return pkgerrors.NewDatabaseError("save profile", err)
	}

	return nil
}

// GetByUserID retrieves the user's profile
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", userID)},
			"SK": &types.AttributeValueMemberS{Value: "PROFILE"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get profile", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("profile")
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal profile", err)
	}

	var birthData *valueobjects.BirthData
	if item.BirthDate != "" {
		lat, lon := 0.0, 0.0
		if item.BirthLatitude != nil {
			lat = *item.BirthLatitude
		}
		if item.BirthLongitude != nil {
			lon = *item.BirthLongitude
		}
		birth, err := valueobjects.NewBirthData(item.BirthDate, item.BirthTime, lat, lon, item.BirthTimezone, item.BirthLocation)
		if err != nil {
			return nil, fmt.Errorf("invalid birth data on profile %s: %w", userID, err)
		}
		birthData = &birth
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid CreatedAt on profile %s: %w", userID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid UpdatedAt on profile %s: %w", userID, err)
	}

	return entities.ReconstructProfile(
		item.UserID,
		item.DisplayName,
		birthData,
		item.Timezone,
		createdAt, updatedAt,
	)
}
