package movie

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/webtor-io/movie-catalog/models"
)

// MemoryStore is a process-local Store. It enforces the same uniqueness
// rule as the SQL backends.
type MemoryStore struct {
	mu     sync.RWMutex
	movies map[int64]models.Movie
	lastID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		movies: map[int64]models.Movie{},
	}
}

func (s *MemoryStore) hasFields(m *models.Movie, skipID int64) bool {
	for id, o := range s.movies {
		if id != skipID && o.SameFields(m) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) Create(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasFields(m, 0) {
		return ErrDuplicate
	}
	s.lastID++
	m.ID = s.lastID
	s.movies[m.ID] = *m
	return nil
}

func (s *MemoryStore) Update(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[m.ID]; !ok {
		return ErrMissing
	}
	if s.hasFields(m, m.ID) {
		return ErrDuplicate
	}
	s.movies[m.ID] = *m
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *MemoryStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.movies[id]
	return ok, nil
}

func (s *MemoryStore) ExistsByFields(_ context.Context, m *models.Movie) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasFields(m, 0), nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.movies, id)
	return nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.movies)
	return nil
}

func (s *MemoryStore) List(_ context.Context, f models.MovieFilter) ([]*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := []*models.Movie{}
	for _, id := range slices.Sorted(maps.Keys(s.movies)) {
		m := s.movies[id]
		if matches(&m, f) {
			movies = append(movies, &m)
		}
	}
	return movies, nil
}

func matches(m *models.Movie, f models.MovieFilter) bool {
	if f.Genre != nil && m.Genre != *f.Genre {
		return false
	}
	if f.ReleaseYear != nil && m.ReleaseYear != *f.ReleaseYear {
		return false
	}
	if f.Rating != nil && m.Rating != *f.Rating {
		return false
	}
	if f.Title != nil && !models.TitleContains(m.Title, *f.Title) {
		return false
	}
	return true
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies), nil
}

func (s *MemoryStore) Close() {}

var _ Store = (*MemoryStore)(nil)
