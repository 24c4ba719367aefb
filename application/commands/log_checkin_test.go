package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"stellium-backend/domain/config"
	pkgerrors "stellium-backend/pkg/errors"
	"stellium-backend/tests/mocks"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestLogCheckInHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	cmd := LogCheckInCommand{
		UserID: "user123",
		Mood:   intPtr(7),
		Stress: strPtr("low"),
		Energy: intPtr(6),
		Tags:   []string{"Work", "work", "sleep"},
		Note:   "good day",
	}

	mockRepo.On("Save", ctx, mock.AnythingOfType("*entities.CheckIn")).Return(nil)
	mockEventBus.On("PublishBatch", ctx, mock.AnythingOfType("[]events.DomainEvent")).Return(nil)

	handler := NewLogCheckInHandler(mockRepo, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	// Act
	checkIn, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, checkIn)
	assert.Equal(t, "user123", checkIn.UserID())
	assert.Equal(t, 7, checkIn.Mood().Int())
	assert.Equal(t, "low", checkIn.Stress().String())
	// duplicate tags are collapsed case-insensitively
	assert.Len(t, checkIn.Tags(), 2)
	assert.Empty(t, checkIn.GetUncommittedEvents())
	mockRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestLogCheckInHandler_Handle_RequiresAMetric(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	cmd := LogCheckInCommand{
		UserID: "user123",
		Note:   "note only",
	}

	handler := NewLogCheckInHandler(mockRepo, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	checkIn, err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.Nil(t, checkIn)
	assert.True(t, pkgerrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLogCheckInHandler_Handle_InvalidMood(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	cmd := LogCheckInCommand{
		UserID: "user123",
		Mood:   intPtr(42),
	}

	handler := NewLogCheckInHandler(mockRepo, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	_, err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLogCheckInHandler_Handle_SaveFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	cmd := LogCheckInCommand{
		UserID: "user123",
		Mood:   intPtr(5),
	}

	mockRepo.On("Save", ctx, mock.AnythingOfType("*entities.CheckIn")).
		Return(pkgerrors.NewDatabaseError("save check-in", errors.New("throttled")))

	handler := NewLogCheckInHandler(mockRepo, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	checkIn, err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.Nil(t, checkIn)
	mockEventBus.AssertNotCalled(t, "PublishBatch", mock.Anything, mock.Anything)
}

func TestLogCheckInHandler_Handle_EventFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	cmd := LogCheckInCommand{
		UserID: "user123",
		Mood:   intPtr(5),
	}

	mockRepo.On("Save", ctx, mock.AnythingOfType("*entities.CheckIn")).Return(nil)
	mockEventBus.On("PublishBatch", ctx, mock.AnythingOfType("[]events.DomainEvent")).
		Return(errors.New("bus unavailable"))

	handler := NewLogCheckInHandler(mockRepo, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	checkIn, err := handler.Handle(ctx, cmd)

	assert.NoError(t, err)
	assert.NotNil(t, checkIn)
}
