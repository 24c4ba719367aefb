package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"stellium-backend/domain/config"
	"stellium-backend/domain/core/entities"
	pkgerrors "stellium-backend/pkg/errors"
	"stellium-backend/tests/mocks"
)

func floatPtr(v float64) *float64 { return &v }

func TestWriteJournalEntryHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(mocks.MockJournalEntryRepository)
	mockEnricher := new(mocks.MockNlpEnricher)
	mockEventBus := new(mocks.MockEventBus)

	cmd := WriteJournalEntryCommand{
		UserID: "user123",
		Text:   "Slept well and felt calm all morning.",
	}

	enrichment := &entities.NlpEnrichment{
		Keywords:      []string{"sleep", "calm"},
		EmotionCounts: map[string]int{"calm": 1},
		Sentiment:     floatPtr(0.6),
	}
	mockEnricher.On("Enrich", ctx, cmd.Text).Return(enrichment, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*entities.JournalEntry")).Return(nil)
	mockEventBus.On("PublishBatch", ctx, mock.AnythingOfType("[]events.DomainEvent")).Return(nil)

	handler := NewWriteJournalEntryHandler(mockRepo, mockEnricher, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	// Act
	entry, err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.True(t, entry.IsEnriched())
	assert.Equal(t, []string{"sleep", "calm"}, entry.Enrichment().Keywords)
	assert.Equal(t, 7, entry.WordCount())
	mockRepo.AssertExpectations(t)
	mockEnricher.AssertExpectations(t)
}

func TestWriteJournalEntryHandler_Handle_EnrichmentFailureStillSaves(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockJournalEntryRepository)
	mockEnricher := new(mocks.MockNlpEnricher)
	mockEventBus := new(mocks.MockEventBus)

	cmd := WriteJournalEntryCommand{
		UserID: "user123",
		Text:   "Rough day at work.",
	}

	mockEnricher.On("Enrich", ctx, cmd.Text).Return(nil, errors.New("nlp timeout"))
	mockRepo.On("Save", ctx, mock.AnythingOfType("*entities.JournalEntry")).Return(nil)
	mockEventBus.On("PublishBatch", ctx, mock.AnythingOfType("[]events.DomainEvent")).Return(nil)

	handler := NewWriteJournalEntryHandler(mockRepo, mockEnricher, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	entry, err := handler.Handle(ctx, cmd)

	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.False(t, entry.IsEnriched())
	mockRepo.AssertExpectations(t)
}

func TestWriteJournalEntryHandler_Handle_NilEnricherSkipsEnrichment(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockJournalEntryRepository)
	mockEventBus := new(mocks.MockEventBus)

	cmd := WriteJournalEntryCommand{
		UserID: "user123",
		Text:   "Quick note.",
	}

	mockRepo.On("Save", ctx, mock.AnythingOfType("*entities.JournalEntry")).Return(nil)
	mockEventBus.On("PublishBatch", ctx, mock.AnythingOfType("[]events.DomainEvent")).Return(nil)

	handler := NewWriteJournalEntryHandler(mockRepo, nil, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	entry, err := handler.Handle(ctx, cmd)

	assert.NoError(t, err)
	assert.False(t, entry.IsEnriched())
}

func TestWriteJournalEntryHandler_Handle_EmptyText(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockJournalEntryRepository)
	mockEventBus := new(mocks.MockEventBus)

	cmd := WriteJournalEntryCommand{
		UserID: "user123",
		Text:   "   ",
	}

	handler := NewWriteJournalEntryHandler(mockRepo, nil, mockEventBus, config.DefaultDomainConfig(), zap.NewNop())

	entry, err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.Nil(t, entry)
	assert.True(t, pkgerrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
