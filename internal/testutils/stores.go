package testutils

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

// MemStore is an in-memory backing for the word and word group repositories.
// It mirrors the constraints of the postgres schema that services depend on:
// counter clamping, the current-word reference being cleared when its word is
// deleted, and the status guard on batch reactivation.
type MemStore struct {
	mu     sync.Mutex
	now    time.Time
	words  map[uuid.UUID]domain.Word
	groups map[uuid.UUID]domain.WordGroup
}

// NewMemStore returns an empty store whose clock reads now.
func NewMemStore(now time.Time) *MemStore {
	return &MemStore{
		now:    now.UTC(),
		words:  make(map[uuid.UUID]domain.Word),
		groups: make(map[uuid.UUID]domain.WordGroup),
	}
}

// Advance moves the store clock forward by d.
func (s *MemStore) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

// Clock returns the current store time.
func (s *MemStore) Clock() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Words returns the store.WordStore view.
func (s *MemStore) Words() store.WordStore {
	return &memWordStore{s: s}
}

// Groups returns the store.WordGroupStore view.
func (s *MemStore) Groups() store.WordGroupStore {
	return &memGroupStore{s: s}
}

// Word returns a copy of the stored word, or nil.
func (s *MemStore) Word(id uuid.UUID) *domain.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.words[id]
	if !ok {
		return nil
	}
	return &w
}

// Group returns a copy of the stored group, or nil.
func (s *MemStore) Group(id uuid.UUID) *domain.WordGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return nil
	}
	return &g
}

type memWordStore struct {
	s *MemStore
}

var _ store.WordStore = (*memWordStore)(nil)

func (m *memWordStore) Create(_ context.Context, word *domain.Word) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.words[word.ID]; ok {
		return store.ErrDuplicate
	}
	if _, ok := m.s.groups[word.GroupID]; !ok {
		return store.ErrInvalidEntity
	}
	m.s.words[word.ID] = *word
	return nil
}

func (m *memWordStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Word, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	w, ok := m.s.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return &w, nil
}

func (m *memWordStore) ListByGroup(_ context.Context, groupID uuid.UUID) ([]*domain.Word, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]*domain.Word, 0)
	for _, w := range m.s.words {
		if w.GroupID == groupID {
			w := w
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memWordStore) Update(_ context.Context, word *domain.Word) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.words[word.ID]; !ok {
		return store.ErrWordNotFound
	}
	m.s.words[word.ID] = *word
	return nil
}

func (m *memWordStore) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.words[id]; !ok {
		return store.ErrWordNotFound
	}
	m.s.deleteWordLocked(id)
	return nil
}

func (m *memWordStore) DeleteByGroup(_ context.Context, groupID uuid.UUID) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for id, w := range m.s.words {
		if w.GroupID == groupID {
			m.s.deleteWordLocked(id)
			n++
		}
	}
	return n, nil
}

func (m *memWordStore) FindByStatus(_ context.Context, status domain.WordStatus) ([]*domain.Word, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]*domain.Word, 0)
	for _, w := range m.s.words {
		if w.Status == status {
			w := w
			out = append(out, &w)
		}
	}
	return out, nil
}

func (m *memWordStore) ReactivateBatch(_ context.Context, ids []uuid.UUID, now time.Time) (int64, error) {
	if len(ids) > store.MaxBatchSize {
		return 0, store.ErrBatchTooLarge
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		w, ok := m.s.words[id]
		if !ok || w.Status != domain.WordStatusTimeout {
			continue
		}
		w.Reactivate(now)
		m.s.words[id] = w
		n++
	}
	return n, nil
}

func (m *memWordStore) Now(context.Context) (time.Time, error) {
	return m.s.Clock(), nil
}

func (m *memWordStore) WithTx(*sql.Tx) store.WordStore {
	return m
}

// deleteWordLocked removes a word and nulls any current-word reference to it.
func (s *MemStore) deleteWordLocked(id uuid.UUID) {
	delete(s.words, id)
	for gid, g := range s.groups {
		if g.Progress.CurrentWordID != nil && *g.Progress.CurrentWordID == id {
			g.Progress.CurrentWordID = nil
			s.groups[gid] = g
		}
	}
}

type memGroupStore struct {
	s *MemStore
}

var _ store.WordGroupStore = (*memGroupStore)(nil)

func (m *memGroupStore) Create(_ context.Context, group *domain.WordGroup) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.groups[group.ID]; ok {
		return store.ErrDuplicate
	}
	m.s.groups[group.ID] = *group
	return nil
}

func (m *memGroupStore) GetByID(_ context.Context, id uuid.UUID) (*domain.WordGroup, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	g, ok := m.s.groups[id]
	if !ok {
		return nil, store.ErrWordGroupNotFound
	}
	return &g, nil
}

func (m *memGroupStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.WordGroup, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]*domain.WordGroup, 0)
	for _, g := range m.s.groups {
		if g.UserID == userID {
			g := g
			out = append(out, &g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memGroupStore) Update(_ context.Context, group *domain.WordGroup) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.groups[group.ID]
	if !ok {
		return store.ErrWordGroupNotFound
	}
	stored.Name = group.Name
	stored.UpdatedAt = group.UpdatedAt
	m.s.groups[group.ID] = stored
	return nil
}

func (m *memGroupStore) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.groups[id]; !ok {
		return store.ErrWordGroupNotFound
	}
	delete(m.s.groups, id)
	return nil
}

func (m *memGroupStore) AdjustCounters(_ context.Context, id uuid.UUID, totalDelta, learnedDelta int) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	g, ok := m.s.groups[id]
	if !ok {
		return store.ErrWordGroupNotFound
	}
	total := max(g.Progress.TotalWords+totalDelta, 0)
	learned := min(max(g.Progress.LearnedWords+learnedDelta, 0), total)
	g.Progress.TotalWords = total
	g.Progress.LearnedWords = learned
	m.s.groups[id] = g
	return nil
}

func (m *memGroupStore) SetCurrentWord(_ context.Context, id uuid.UUID, wordID *uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	g, ok := m.s.groups[id]
	if !ok {
		return store.ErrWordGroupNotFound
	}
	if wordID != nil {
		current := *wordID
		wordID = &current
	}
	g.Progress.CurrentWordID = wordID
	m.s.groups[id] = g
	return nil
}

func (m *memGroupStore) ClearCurrentWordIf(_ context.Context, id uuid.UUID, wordID uuid.UUID) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	g, ok := m.s.groups[id]
	if !ok || g.Progress.CurrentWordID == nil || *g.Progress.CurrentWordID != wordID {
		return false, nil
	}
	g.Progress.CurrentWordID = nil
	m.s.groups[id] = g
	return true, nil
}

func (m *memGroupStore) WithTx(*sql.Tx) store.WordGroupStore {
	return m
}
