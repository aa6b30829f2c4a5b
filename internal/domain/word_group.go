package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxGroupNameLength bounds WordGroup.Name.
const MaxGroupNameLength = 100

// Word group validation errors
var (
	ErrWordGroupIDEmpty     = fmt.Errorf("%w: word group ID cannot be empty", ErrValidation)
	ErrWordGroupUserIDEmpty = fmt.Errorf("%w: word group user ID cannot be empty", ErrValidation)
	ErrWordGroupNameEmpty   = fmt.Errorf("%w: word group name cannot be empty", ErrValidation)
	ErrWordGroupNameTooLong = fmt.Errorf("%w: word group name is too long", ErrValidation)
	ErrWordGroupBadCounters = fmt.Errorf("%w: word group counters must satisfy 0 <= learned <= total", ErrValidation)
	ErrWordGroupUpdateEmpty = fmt.Errorf("%w: no fields to update", ErrValidation)
)

// GroupProgress aggregates the learning state of a group's words.
type GroupProgress struct {
	TotalWords    int        `json:"total_words"`
	LearnedWords  int        `json:"learned_words"`
	CurrentWordID *uuid.UUID `json:"current_word_id"`
}

// WordGroup is a named collection of words owned by one user.
type WordGroup struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Name      string        `json:"name"`
	Progress  GroupProgress `json:"progress"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewWordGroup creates an empty group for the user.
func NewWordGroup(userID uuid.UUID, name string) (*WordGroup, error) {
	now := time.Now().UTC()
	g := &WordGroup{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the group's fields and counter invariant.
func (g *WordGroup) Validate() error {
	if g.ID == uuid.Nil {
		return ErrWordGroupIDEmpty
	}
	if g.UserID == uuid.Nil {
		return ErrWordGroupUserIDEmpty
	}
	if g.Name == "" {
		return ErrWordGroupNameEmpty
	}
	if len(g.Name) > MaxGroupNameLength {
		return ErrWordGroupNameTooLong
	}
	p := g.Progress
	if p.LearnedWords < 0 || p.LearnedWords > p.TotalWords {
		return ErrWordGroupBadCounters
	}
	return nil
}

// IsOwnedBy reports whether userID owns the group.
func (g *WordGroup) IsOwnedBy(userID uuid.UUID) bool {
	return g.UserID == userID
}

// IsCurrentWord reports whether wordID is the word the group currently presents.
func (g *WordGroup) IsCurrentWord(wordID uuid.UUID) bool {
	return g.Progress.CurrentWordID != nil && *g.Progress.CurrentWordID == wordID
}

// WordGroupUpdate lists the fields a caller may change on a group.
type WordGroupUpdate struct {
	Name *string
}

// ApplyUpdate applies u to the group and validates the result.
func (g *WordGroup) ApplyUpdate(u WordGroupUpdate) error {
	if u.Name == nil {
		return ErrWordGroupUpdateEmpty
	}
	g.Name = strings.TrimSpace(*u.Name)
	g.UpdatedAt = time.Now().UTC()
	return g.Validate()
}
