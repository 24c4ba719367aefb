package valueobjects

import (
	"fmt"

	"github.com/google/uuid"
)

// CheckInID uniquely identifies a check-in record
type CheckInID struct {
	value string
}

// NewCheckInID generates a new unique check-in ID
func NewCheckInID() CheckInID {
	return CheckInID{value: uuid.New().String()}
}

// ParseCheckInID creates a CheckInID from an existing string
func ParseCheckInID(s string) (CheckInID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return CheckInID{}, fmt.Errorf("invalid check-in id %q: %w", s, err)
	}
	return CheckInID{value: s}, nil
}

// String returns the string representation
func (id CheckInID) String() string {
	return id.value
}

// Equals checks equality with another ID
func (id CheckInID) Equals(other CheckInID) bool {
	return id.value == other.value
}

// IsEmpty reports whether the ID is the zero value
func (id CheckInID) IsEmpty() bool {
	return id.value == ""
}

// EntryID uniquely identifies a journal entry
type EntryID struct {
	value string
}

// NewEntryID generates a new unique journal entry ID
func NewEntryID() EntryID {
	return EntryID{value: uuid.New().String()}
}

// ParseEntryID creates an EntryID from an existing string
func ParseEntryID(s string) (EntryID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return EntryID{}, fmt.Errorf("invalid journal entry id %q: %w", s, err)
	}
	return EntryID{value: s}, nil
}

// String returns the string representation
func (id EntryID) String() string {
	return id.value
}

// Equals checks equality with another ID
func (id EntryID) Equals(other EntryID) bool {
	return id.value == other.value
}

// IsEmpty reports whether the ID is the zero value
func (id EntryID) IsEmpty() bool {
	return id.value == ""
}
