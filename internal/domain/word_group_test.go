package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/domain"
)

func TestNewWordGroup(t *testing.T) {
	userID := uuid.New()

	g, err := domain.NewWordGroup(userID, " Travel ")

	require.NoError(t, err)
	assert.Equal(t, "Travel", g.Name)
	assert.Equal(t, userID, g.UserID)
	assert.Zero(t, g.Progress.TotalWords)
	assert.Zero(t, g.Progress.LearnedWords)
	assert.Nil(t, g.Progress.CurrentWordID)
	assert.True(t, g.IsOwnedBy(userID))
	assert.False(t, g.IsOwnedBy(uuid.New()))
}

func TestWordGroup_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(g *domain.WordGroup)
		wantErr error
	}{
		{"empty name", func(g *domain.WordGroup) { g.Name = "" }, domain.ErrWordGroupNameEmpty},
		{"long name", func(g *domain.WordGroup) { g.Name = strings.Repeat("a", 101) }, domain.ErrWordGroupNameTooLong},
		{"no owner", func(g *domain.WordGroup) { g.UserID = uuid.Nil }, domain.ErrWordGroupUserIDEmpty},
		{"learned above total", func(g *domain.WordGroup) {
			g.Progress.TotalWords = 1
			g.Progress.LearnedWords = 2
		}, domain.ErrWordGroupBadCounters},
		{"negative learned", func(g *domain.WordGroup) { g.Progress.LearnedWords = -1 }, domain.ErrWordGroupBadCounters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := domain.NewWordGroup(uuid.New(), "Food")
			require.NoError(t, err)
			tt.mutate(g)
			assert.ErrorIs(t, g.Validate(), tt.wantErr)
		})
	}
}

func TestWordGroup_IsCurrentWord(t *testing.T) {
	g, err := domain.NewWordGroup(uuid.New(), "Food")
	require.NoError(t, err)
	wordID := uuid.New()

	assert.False(t, g.IsCurrentWord(wordID))
	g.Progress.CurrentWordID = &wordID
	assert.True(t, g.IsCurrentWord(wordID))
	assert.False(t, g.IsCurrentWord(uuid.New()))
}

func TestWordGroup_ApplyUpdate(t *testing.T) {
	g, err := domain.NewWordGroup(uuid.New(), "Food")
	require.NoError(t, err)

	assert.ErrorIs(t, g.ApplyUpdate(domain.WordGroupUpdate{}), domain.ErrWordGroupUpdateEmpty)

	name := "Cooking"
	require.NoError(t, g.ApplyUpdate(domain.WordGroupUpdate{Name: &name}))
	assert.Equal(t, "Cooking", g.Name)

	blank := "  "
	assert.ErrorIs(t, g.ApplyUpdate(domain.WordGroupUpdate{Name: &blank}), domain.ErrWordGroupNameEmpty)
}
