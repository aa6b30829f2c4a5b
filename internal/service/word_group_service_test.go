package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/mocks"
	"github.com/lexicard/lexicard-api/internal/service"
	"github.com/lexicard/lexicard-api/internal/store"
	"github.com/lexicard/lexicard-api/internal/testutils"
)

func newWordGroupService(t *testing.T) (service.WordGroupService, *mocks.MockWordGroupStore, *mocks.MockWordStore, func(bool)) {
	t.Helper()

	db, sqlMock := testutils.NewMockDB(t)
	groups := &mocks.MockWordGroupStore{}
	words := &mocks.MockWordStore{}
	svc, err := service.NewWordGroupService(db, groups, words, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		groups.AssertExpectations(t)
		words.AssertExpectations(t)
	})
	expectTx := func(commit bool) {
		if commit {
			testutils.ExpectCommittedTx(sqlMock)
		} else {
			testutils.ExpectRolledBackTx(sqlMock)
		}
	}
	return svc, groups, words, expectTx
}

func TestCreateGroup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("starts with zero counters", func(t *testing.T) {
		t.Parallel()
		svc, groups, _, _ := newWordGroupService(t)
		userID := uuid.New()
		groups.On("Create", mock.Anything, mock.AnythingOfType("*domain.WordGroup")).Return(nil)

		got, err := svc.CreateGroup(ctx, userID, "  Kitchen  ")
		require.NoError(t, err)
		assert.Equal(t, "Kitchen", got.Name)
		assert.Equal(t, userID, got.UserID)
		assert.Zero(t, got.Progress.TotalWords)
		assert.Zero(t, got.Progress.LearnedWords)
		assert.Nil(t, got.Progress.CurrentWordID)
	})

	t.Run("blank name", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newWordGroupService(t)

		_, err := svc.CreateGroup(ctx, uuid.New(), "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestGetAndUpdateGroup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, groups, _, _ := newWordGroupService(t)
	owner := uuid.New()
	group := testutils.MustCreateWordGroupForTest(t, testutils.WithGroupUserID(owner))
	groups.On("GetByID", mock.Anything, group.ID).Return(group, nil)
	groups.On("Update", mock.Anything, group).Return(nil)

	got, err := svc.GetGroup(ctx, owner, group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)

	_, err = svc.GetGroup(ctx, uuid.New(), group.ID)
	assert.ErrorIs(t, err, service.ErrNotOwned)

	name := "Renamed"
	updated, err := svc.UpdateGroup(ctx, owner, group.ID, domain.WordGroupUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = svc.UpdateGroup(ctx, owner, group.ID, domain.WordGroupUpdate{})
	assert.ErrorIs(t, err, domain.ErrWordGroupUpdateEmpty)
}

func TestDeleteGroup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes words then the group", func(t *testing.T) {
		t.Parallel()
		svc, groups, words, expectTx := newWordGroupService(t)
		owner := uuid.New()
		group := testutils.MustCreateWordGroupForTest(t, testutils.WithGroupUserID(owner))

		expectTx(true)
		groups.On("GetByID", mock.Anything, group.ID).Return(group, nil)
		groups.On("SetCurrentWord", mock.Anything, group.ID, (*uuid.UUID)(nil)).Return(nil)
		words.On("DeleteByGroup", mock.Anything, group.ID).Return(int64(4), nil)
		groups.On("Delete", mock.Anything, group.ID).Return(nil)

		require.NoError(t, svc.DeleteGroup(ctx, owner, group.ID))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc, groups, _, expectTx := newWordGroupService(t)
		id := uuid.New()

		expectTx(false)
		groups.On("GetByID", mock.Anything, id).Return(nil, store.ErrWordGroupNotFound)

		assert.ErrorIs(t, svc.DeleteGroup(ctx, uuid.New(), id), store.ErrNotFound)
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Parallel()
		svc, groups, words, expectTx := newWordGroupService(t)
		group := testutils.MustCreateWordGroupForTest(t)

		expectTx(false)
		groups.On("GetByID", mock.Anything, group.ID).Return(group, nil)

		assert.ErrorIs(t, svc.DeleteGroup(ctx, uuid.New(), group.ID), service.ErrNotOwned)
		words.AssertNotCalled(t, "DeleteByGroup", mock.Anything, mock.Anything)
	})
}

func TestSetCurrentWord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("points the group at the word", func(t *testing.T) {
		t.Parallel()
		svc, groups, words, _ := newWordGroupService(t)
		owner := uuid.New()
		group := testutils.MustCreateWordGroupForTest(t, testutils.WithGroupUserID(owner))
		word := testutils.MustCreateWordForTest(t, testutils.WithWordGroupID(group.ID))

		groups.On("GetByID", mock.Anything, group.ID).Return(group, nil)
		words.On("GetByID", mock.Anything, word.ID).Return(word, nil)
		groups.On("SetCurrentWord", mock.Anything, group.ID, &word.ID).Return(nil)

		got, err := svc.SetCurrentWord(ctx, owner, group.ID, word.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Progress.CurrentWordID)
		assert.Equal(t, word.ID, *got.Progress.CurrentWordID)
	})

	t.Run("word from another group is rejected without mutation", func(t *testing.T) {
		t.Parallel()
		svc, groups, words, _ := newWordGroupService(t)
		owner := uuid.New()
		group := testutils.MustCreateWordGroupForTest(t, testutils.WithGroupUserID(owner))
		word := testutils.MustCreateWordForTest(t)

		groups.On("GetByID", mock.Anything, group.ID).Return(group, nil)
		words.On("GetByID", mock.Anything, word.ID).Return(word, nil)

		_, err := svc.SetCurrentWord(ctx, owner, group.ID, word.ID)
		assert.ErrorIs(t, err, service.ErrWordGroupMismatch)
		assert.ErrorIs(t, err, domain.ErrValidation)
		groups.AssertNotCalled(t, "SetCurrentWord", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found wins over forbidden", func(t *testing.T) {
		t.Parallel()
		svc, groups, words, _ := newWordGroupService(t)
		group := testutils.MustCreateWordGroupForTest(t)
		missing := uuid.New()

		groups.On("GetByID", mock.Anything, group.ID).Return(group, nil)
		words.On("GetByID", mock.Anything, missing).Return(nil, store.ErrWordNotFound)

		_, err := svc.SetCurrentWord(ctx, uuid.New(), group.ID, missing)
		assert.ErrorIs(t, err, store.ErrWordNotFound)
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Parallel()
		svc, groups, words, _ := newWordGroupService(t)
		group := testutils.MustCreateWordGroupForTest(t)
		word := testutils.MustCreateWordForTest(t, testutils.WithWordGroupID(group.ID))

		groups.On("GetByID", mock.Anything, group.ID).Return(group, nil)
		words.On("GetByID", mock.Anything, word.ID).Return(word, nil)

		_, err := svc.SetCurrentWord(ctx, uuid.New(), group.ID, word.ID)
		assert.ErrorIs(t, err, service.ErrNotOwned)
	})
}

func TestListDecks(t *testing.T) {
	t.Parallel()

	svc, groups, words, _ := newWordGroupService(t)
	owner := uuid.New()
	group := testutils.MustCreateWordGroupForTest(t, testutils.WithGroupUserID(owner))
	active := testutils.MustCreateWordForTest(t, testutils.WithWordGroupID(group.ID))
	hidden := testutils.MustCreateWordForTest(t,
		testutils.WithWordGroupID(group.ID),
		testutils.WithWordStatus(domain.WordStatusTimeout))
	learned := testutils.MustCreateWordForTest(t,
		testutils.WithWordGroupID(group.ID),
		testutils.WithWordStatus(domain.WordStatusLearned))

	groups.On("ListByUser", mock.Anything, owner).Return([]*domain.WordGroup{group}, nil)
	words.On("ListByGroup", mock.Anything, group.ID).Return([]*domain.Word{active, hidden, learned}, nil)

	decks, err := svc.ListDecks(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, group.ID, decks[0].Group.ID)
	require.Len(t, decks[0].Words, 1)
	assert.Equal(t, active.ID, decks[0].Words[0].ID)
}
