package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"stellium-backend/domain/config"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
	pkgerrors "stellium-backend/pkg/errors"
	"stellium-backend/tests/mocks"
)

func newStoredCheckIn(t *testing.T, userID string) *entities.CheckIn {
	t.Helper()
	mood, err := valueobjects.NewScore(6)
	assert.NoError(t, err)
	checkIn, err := entities.NewCheckIn(userID, &mood, nil, nil, nil, "", time.Now(), config.DefaultDomainConfig())
	assert.NoError(t, err)
	checkIn.MarkEventsAsCommitted()
	return checkIn
}

func TestDeleteCheckInHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	checkIn := newStoredCheckIn(t, "user123")
	cmd := DeleteCheckInCommand{UserID: "user123", CheckInID: checkIn.ID().String()}

	mockRepo.On("GetByID", ctx, "user123", checkIn.ID()).Return(checkIn, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*entities.CheckIn")).Return(nil)
	mockEventBus.On("PublishBatch", ctx, mock.AnythingOfType("[]events.DomainEvent")).Return(nil)

	handler := NewDeleteCheckInHandler(mockRepo, mockEventBus, zap.NewNop())

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.True(t, checkIn.IsDeleted())
	mockRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestDeleteCheckInHandler_Handle_InvalidID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	handler := NewDeleteCheckInHandler(mockRepo, mockEventBus, zap.NewNop())

	err := handler.Handle(ctx, DeleteCheckInCommand{UserID: "user123", CheckInID: "not-a-uuid"})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCheckInHandler_Handle_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	id := valueobjects.NewCheckInID()
	cmd := DeleteCheckInCommand{UserID: "user123", CheckInID: id.String()}

	mockRepo.On("GetByID", ctx, "user123", id).
		Return(nil, pkgerrors.NewNotFoundError("check-in not found"))

	handler := NewDeleteCheckInHandler(mockRepo, mockEventBus, zap.NewNop())

	err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteCheckInHandler_Handle_AlreadyDeleted(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockCheckInRepository)
	mockEventBus := new(mocks.MockEventBus)

	checkIn := newStoredCheckIn(t, "user123")
	assert.NoError(t, checkIn.Delete())
	checkIn.MarkEventsAsCommitted()
	cmd := DeleteCheckInCommand{UserID: "user123", CheckInID: checkIn.ID().String()}

	mockRepo.On("GetByID", ctx, "user123", checkIn.ID()).Return(checkIn, nil)

	handler := NewDeleteCheckInHandler(mockRepo, mockEventBus, zap.NewNop())

	err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
