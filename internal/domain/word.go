package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WordStatus is the learning state of a word.
type WordStatus string

const (
	// WordStatusActive words are shown to the learner.
	WordStatusActive WordStatus = "active"
	// WordStatusTimeout words are suspended until TimeoutUntil passes.
	WordStatusTimeout WordStatus = "timeout"
	// WordStatusLearned words count towards the group's learned total.
	WordStatusLearned WordStatus = "learned"
)

// MaxWordLength bounds the term and the part-of-speech fields.
const MaxWordLength = 200

// MaxTimeoutMinutes is the longest timeout a word accepts (one year).
const MaxTimeoutMinutes = 365 * 24 * 60

// ValidTimeoutMinutes reports whether minutes is an acceptable timeout length.
func ValidTimeoutMinutes(minutes int) bool {
	return minutes > 0 && minutes <= MaxTimeoutMinutes
}

// Word validation errors
var (
	ErrWordIDEmpty        = fmt.Errorf("%w: word ID cannot be empty", ErrValidation)
	ErrWordTextEmpty      = fmt.Errorf("%w: word cannot be empty", ErrValidation)
	ErrWordTextTooLong    = fmt.Errorf("%w: word is too long", ErrValidation)
	ErrWordMeaningEmpty   = fmt.Errorf("%w: meaning cannot be empty", ErrValidation)
	ErrInvalidWordStatus  = fmt.Errorf("%w: invalid word status", ErrValidation)
	ErrTimeoutUntilNeeded = fmt.Errorf("%w: timeout_until must be set if and only if status is timeout", ErrValidation)
	ErrWordUpdateEmpty    = fmt.Errorf("%w: no fields to update", ErrValidation)
)

// IsValid reports whether s is one of the known statuses.
func (s WordStatus) IsValid() bool {
	switch s {
	case WordStatusActive, WordStatusTimeout, WordStatusLearned:
		return true
	}
	return false
}

// Word is a single vocabulary flashcard. Every word belongs to exactly one WordGroup.
type Word struct {
	ID                uuid.UUID  `json:"id"`
	GroupID           uuid.UUID  `json:"group_id"`
	Word              string     `json:"word"`
	Meaning           string     `json:"meaning"`
	Type              string     `json:"type,omitempty"`
	Example           string     `json:"example,omitempty"`
	AudioURL          string     `json:"audio_url,omitempty"`
	Status            WordStatus `json:"status"`
	TimeoutUntil      *time.Time `json:"timeout_until"`
	LastReviewed      *time.Time `json:"last_reviewed,omitempty"`
	LastReactivatedAt *time.Time `json:"last_reactivated_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewWord creates an active word in the given group.
func NewWord(groupID uuid.UUID, word, meaning string, now time.Time) (*Word, error) {
	reviewed := now
	w := &Word{
		ID:           uuid.New(),
		GroupID:      groupID,
		Word:         strings.TrimSpace(word),
		Meaning:      strings.TrimSpace(meaning),
		Status:       WordStatusActive,
		LastReviewed: &reviewed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks field constraints and the status/timeout invariant.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}
	if w.GroupID == uuid.Nil {
		return ErrWordGroupIDEmpty
	}
	if strings.TrimSpace(w.Word) == "" {
		return ErrWordTextEmpty
	}
	if len(w.Word) > MaxWordLength || len(w.Type) > MaxWordLength {
		return ErrWordTextTooLong
	}
	if strings.TrimSpace(w.Meaning) == "" {
		return ErrWordMeaningEmpty
	}
	if !w.Status.IsValid() {
		return ErrInvalidWordStatus
	}
	if (w.Status == WordStatusTimeout) != (w.TimeoutUntil != nil) {
		return ErrTimeoutUntilNeeded
	}
	return nil
}

// IsLearned reports whether the word counts towards the group's learned total.
func (w *Word) IsLearned() bool {
	return w.Status == WordStatusLearned
}

// Transition records a status change and its effect on the group's learned counter.
type Transition struct {
	From         WordStatus
	To           WordStatus
	LearnedDelta int
}

// Changed reports whether the status actually moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// ApplyTimeout suspends the word for the given number of minutes starting at now.
// A word that is already in timeout gets a fresh window. Learned words cannot be
// timed out.
func (w *Word) ApplyTimeout(now time.Time, minutes int) (Transition, error) {
	t := Transition{From: w.Status, To: w.Status}
	if !ValidTimeoutMinutes(minutes) {
		return t, ErrInvalidTimeoutDuration
	}
	if w.Status == WordStatusLearned {
		return t, fmt.Errorf("%w: learned words cannot be timed out", ErrInvalidTransition)
	}

	until := now.Add(time.Duration(minutes) * time.Minute)
	w.Status = WordStatusTimeout
	w.TimeoutUntil = &until
	w.UpdatedAt = now

	t.To = WordStatusTimeout
	return t, nil
}

// ShouldReactivate reports whether a sweep at now must bring the word back.
// A timeout word missing its deadline is always due.
func (w *Word) ShouldReactivate(now time.Time) bool {
	if w.Status != WordStatusTimeout {
		return false
	}
	return w.TimeoutUntil == nil || !now.Before(*w.TimeoutUntil)
}

// Reactivate moves a timed-out word back to active.
func (w *Word) Reactivate(now time.Time) {
	reactivated := now
	w.Status = WordStatusActive
	w.TimeoutUntil = nil
	w.LastReactivatedAt = &reactivated
	w.UpdatedAt = now
}

// TransitionTo moves the word to target through an explicit status update.
// Timeouts need a duration and are only reachable through ApplyTimeout.
func (w *Word) TransitionTo(target WordStatus, now time.Time) (Transition, error) {
	t := Transition{From: w.Status, To: w.Status}
	if !target.IsValid() {
		return t, ErrInvalidWordStatus
	}
	if target == w.Status {
		return t, nil
	}

	switch target {
	case WordStatusTimeout:
		return t, fmt.Errorf("%w: a timeout requires a duration", ErrInvalidTransition)
	case WordStatusLearned:
		reviewed := now
		w.TimeoutUntil = nil
		w.LastReviewed = &reviewed
		t.LearnedDelta = 1
	case WordStatusActive:
		if w.Status == WordStatusTimeout {
			w.Reactivate(now)
		}
		if w.Status == WordStatusLearned {
			t.LearnedDelta = -1
		}
	}

	w.Status = target
	w.UpdatedAt = now
	t.To = target
	return t, nil
}

// WordUpdate lists the fields a caller may change on a word. Nil fields are left untouched.
type WordUpdate struct {
	Word     *string
	Meaning  *string
	Type     *string
	Example  *string
	AudioURL *string
	Status   *WordStatus
}

// IsEmpty reports whether the update carries no field at all.
func (u WordUpdate) IsEmpty() bool {
	return u.Word == nil && u.Meaning == nil && u.Type == nil &&
		u.Example == nil && u.AudioURL == nil && u.Status == nil
}

// ApplyUpdate applies u to the word. A status change runs first, then the
// remaining fields; the result is validated before returning.
func (w *Word) ApplyUpdate(u WordUpdate, now time.Time) (Transition, error) {
	t := Transition{From: w.Status, To: w.Status}

	if u.Status != nil {
		var err error
		if t, err = w.TransitionTo(*u.Status, now); err != nil {
			return t, err
		}
	}

	if u.Word != nil {
		w.Word = strings.TrimSpace(*u.Word)
	}
	if u.Meaning != nil {
		w.Meaning = strings.TrimSpace(*u.Meaning)
	}
	if u.Type != nil {
		w.Type = strings.TrimSpace(*u.Type)
	}
	if u.Example != nil {
		w.Example = *u.Example
	}
	if u.AudioURL != nil {
		w.AudioURL = *u.AudioURL
	}
	w.UpdatedAt = now

	return t, w.Validate()
}
