package testutils

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/domain"
)

// FixedTime is the default clock used by fixtures.
var FixedTime = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

// WordOption customizes a word built by MustCreateWordForTest.
type WordOption func(*domain.Word)

// WithWordGroupID sets the word's group.
func WithWordGroupID(groupID uuid.UUID) WordOption {
	return func(w *domain.Word) { w.GroupID = groupID }
}

// WithWordText sets the word text.
func WithWordText(text string) WordOption {
	return func(w *domain.Word) { w.Word = text }
}

// WithWordStatus moves the word to status. A timeout status gets a window
// ending one hour after FixedTime unless WithWordTimeoutUntil follows.
func WithWordStatus(status domain.WordStatus) WordOption {
	return func(w *domain.Word) {
		w.Status = status
		w.TimeoutUntil = nil
		if status == domain.WordStatusTimeout {
			until := FixedTime.Add(time.Hour)
			w.TimeoutUntil = &until
		}
	}
}

// WithWordTimeoutUntil puts the word in timeout until the given instant.
func WithWordTimeoutUntil(until time.Time) WordOption {
	return func(w *domain.Word) {
		w.Status = domain.WordStatusTimeout
		w.TimeoutUntil = &until
	}
}

// MustCreateWordForTest builds a valid active word created at FixedTime.
func MustCreateWordForTest(t *testing.T, opts ...WordOption) *domain.Word {
	t.Helper()

	word, err := domain.NewWord(uuid.New(), fmt.Sprintf("word-%s", uuid.NewString()[:8]), "a meaning", FixedTime)
	require.NoError(t, err, "Failed to create test word")
	for _, opt := range opts {
		opt(word)
	}
	require.NoError(t, word.Validate(), "Test word options produced an invalid word")
	return word
}

// GroupOption customizes a group built by MustCreateWordGroupForTest.
type GroupOption func(*domain.WordGroup)

// WithGroupUserID sets the owner.
func WithGroupUserID(userID uuid.UUID) GroupOption {
	return func(g *domain.WordGroup) { g.UserID = userID }
}

// WithGroupName sets the name.
func WithGroupName(name string) GroupOption {
	return func(g *domain.WordGroup) { g.Name = name }
}

// WithGroupProgress sets the counters and current word.
func WithGroupProgress(total, learned int, current *uuid.UUID) GroupOption {
	return func(g *domain.WordGroup) {
		g.Progress = domain.GroupProgress{TotalWords: total, LearnedWords: learned, CurrentWordID: current}
	}
}

// MustCreateWordGroupForTest builds a valid empty group.
func MustCreateWordGroupForTest(t *testing.T, opts ...GroupOption) *domain.WordGroup {
	t.Helper()

	group, err := domain.NewWordGroup(uuid.New(), "Test group "+uuid.NewString()[:8])
	require.NoError(t, err, "Failed to create test word group")
	for _, opt := range opts {
		opt(group)
	}
	require.NoError(t, group.Validate(), "Test group options produced an invalid group")
	return group
}

// MustCreateDeviceForTest builds an active device owned by userID.
func MustCreateDeviceForTest(t *testing.T, userID uuid.UUID, deviceID string) *domain.Device {
	t.Helper()

	device, err := domain.NewDevice(userID, deviceID, "hash-"+deviceID)
	require.NoError(t, err, "Failed to create test device")
	return device
}
