package api

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"max=100"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// GroupRequest is the body of group create and update requests.
type GroupRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// WordRequest is the body of POST /word-groups/{id}/words.
type WordRequest struct {
	Word    string `json:"word"    validate:"required,max=200"`
	Meaning string `json:"meaning" validate:"required"`
	Type    string `json:"type"    validate:"max=200"`
	Example string `json:"example"`
}

// UpdateWordRequest is the body of PUT /words/{id}. Absent fields are left untouched.
type UpdateWordRequest struct {
	Word     *string `json:"word"     validate:"omitempty,max=200"`
	Meaning  *string `json:"meaning"  validate:"omitempty,min=1"`
	Type     *string `json:"type"     validate:"omitempty,max=200"`
	Example  *string `json:"example"`
	AudioURL *string `json:"audioUrl" validate:"omitempty,url"`
	Status   *string `json:"status"   validate:"omitempty,oneof=active timeout learned"`
}

// toDomain converts the request to the domain's optional-field update.
func (r UpdateWordRequest) toDomain() domain.WordUpdate {
	u := domain.WordUpdate{
		Word:     r.Word,
		Meaning:  r.Meaning,
		Type:     r.Type,
		Example:  r.Example,
		AudioURL: r.AudioURL,
	}
	if r.Status != nil {
		status := domain.WordStatus(*r.Status)
		u.Status = &status
	}
	return u
}

// TimeoutRequest is the body of the timeout endpoints. TimeoutMinutes takes
// precedence over Hours.
type TimeoutRequest struct {
	Hours          *float64 `json:"hours"`
	TimeoutMinutes *int     `json:"timeoutMinutes"`
}

// Minutes resolves the requested duration, falling back to defaultMinutes
// when the body names none. Values outside 1..domain.MaxTimeoutMinutes are
// rejected.
func (r TimeoutRequest) Minutes(defaultMinutes int) (int, error) {
	minutes := defaultMinutes
	switch {
	case r.TimeoutMinutes != nil:
		minutes = *r.TimeoutMinutes
	case r.Hours != nil:
		rounded := math.Round(*r.Hours * 60)
		if math.IsNaN(rounded) || rounded <= 0 || rounded > domain.MaxTimeoutMinutes {
			return 0, domain.ErrInvalidTimeoutDuration
		}
		minutes = int(rounded)
	}
	if !domain.ValidTimeoutMinutes(minutes) {
		return 0, domain.ErrInvalidTimeoutDuration
	}
	return minutes, nil
}

// DeviceResetRequest is the body of POST /devices/reset.
type DeviceResetRequest struct {
	DeviceID string `json:"deviceId" validate:"required,max=128"`
}

// ProgressResponse summarises one group for the progress view.
type ProgressResponse struct {
	GroupID       uuid.UUID  `json:"group_id"`
	Name          string     `json:"name"`
	TotalWords    int        `json:"total_words"`
	LearnedWords  int        `json:"learned_words"`
	CurrentWordID *uuid.UUID `json:"current_word_id"`
	Percent       int        `json:"percent"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func progressToResponse(g *domain.WordGroup) ProgressResponse {
	percent := 0
	if g.Progress.TotalWords > 0 {
		percent = g.Progress.LearnedWords * 100 / g.Progress.TotalWords
	}
	return ProgressResponse{
		GroupID:       g.ID,
		Name:          g.Name,
		TotalWords:    g.Progress.TotalWords,
		LearnedWords:  g.Progress.LearnedWords,
		CurrentWordID: g.Progress.CurrentWordID,
		Percent:       percent,
		UpdatedAt:     g.UpdatedAt,
	}
}

// GeneratedGroupResponse is returned by POST /word-groups/generate.
type GeneratedGroupResponse struct {
	Group *domain.WordGroup `json:"group"`
	Words []*domain.Word    `json:"words"`
}

// ImportResponse is returned by the spreadsheet import.
type ImportResponse struct {
	Imported int            `json:"imported"`
	Words    []*domain.Word `json:"words"`
}

// FlashcardDeck is one group as delivered to a device.
type FlashcardDeck struct {
	GroupID       uuid.UUID   `json:"group_id"`
	Name          string      `json:"name"`
	CurrentWordID *uuid.UUID  `json:"current_word_id"`
	Cards         []Flashcard `json:"cards"`
}

// Flashcard is the device's view of a word.
type Flashcard struct {
	ID       uuid.UUID `json:"id"`
	Word     string    `json:"word"`
	Meaning  string    `json:"meaning"`
	Type     string    `json:"type,omitempty"`
	Example  string    `json:"example,omitempty"`
	AudioURL string    `json:"audio_url,omitempty"`
}
