package movie

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/movie-catalog/models"
)

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{
		store: store,
	}
}

// Add stores a new movie and fills its ID. A movie with the same title,
// genre, release year and rating yields *ConflictError.
func (s *Service) Add(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	exists, err := s.store.ExistsByFields(ctx, m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for duplicate movie")
	}
	if exists {
		return nil, conflict()
	}
	// The pre-check keeps pg sequences from advancing on plain duplicates,
	// the store constraint covers concurrent inserts.
	err = s.store.Create(ctx, m)
	if errors.Is(err, ErrDuplicate) {
		return nil, conflict()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create movie")
	}
	log.WithField("movie_id", m.ID).Info("movie added")
	return m, nil
}

func (s *Service) DeleteAll(ctx context.Context) (string, error) {
	if err := s.store.DeleteAll(ctx); err != nil {
		return "", errors.Wrap(err, "failed to delete all movies")
	}
	log.Info("all movies deleted")
	return "all movies were deleted successfully", nil
}

func (s *Service) Delete(ctx context.Context, id int64) (string, error) {
	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return "", errors.Wrapf(err, "failed to check movie %d", id)
	}
	if !exists {
		return "", notFound("movie with ID %d not found", id)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return "", errors.Wrapf(err, "failed to delete movie %d", id)
	}
	log.WithField("movie_id", id).Info("movie deleted")
	return fmt.Sprintf("movie with ID %d deleted successfully", id), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count movies")
	}
	return n, nil
}

// Update overwrites title, genre, release year and rating of an existing
// movie with the values from patch. The ID never changes.
func (s *Service) Update(ctx context.Context, id int64, patch *models.Movie) (string, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get movie %d", id)
	}
	if m == nil {
		return "", notFound("movie with ID %d not found", id)
	}
	m.Title = patch.Title
	m.Genre = patch.Genre
	m.ReleaseYear = patch.ReleaseYear
	m.Rating = patch.Rating
	err = s.store.Update(ctx, m)
	switch {
	case errors.Is(err, ErrMissing):
		return "", notFound("movie with ID %d not found", id)
	case errors.Is(err, ErrDuplicate):
		return "", conflict()
	case err != nil:
		return "", errors.Wrapf(err, "failed to update movie %d", id)
	}
	log.WithField("movie_id", id).Info("movie updated")
	return fmt.Sprintf("movie with ID %d updated successfully", id), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Movie, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get movie %d", id)
	}
	if m == nil {
		return nil, notFound("movie with ID %d not found", id)
	}
	return m, nil
}

// List returns every movie. An empty catalog is not an error.
func (s *Service) List(ctx context.Context) ([]*models.Movie, error) {
	movies, err := s.store.List(ctx, models.MovieFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list movies")
	}
	return movies, nil
}

func (s *Service) ListByGenre(ctx context.Context, genre string) ([]*models.Movie, error) {
	return s.find(ctx, models.MovieFilter{Genre: &genre},
		"no movies found for genre: %s", genre)
}

func (s *Service) ListByReleaseYear(ctx context.Context, year int) ([]*models.Movie, error) {
	return s.find(ctx, models.MovieFilter{ReleaseYear: &year},
		"no movies found for release year: %d", year)
}

func (s *Service) ListByRating(ctx context.Context, rating int) ([]*models.Movie, error) {
	return s.find(ctx, models.MovieFilter{Rating: &rating},
		"no movies found for rating: %d", rating)
}

func (s *Service) ListByTitle(ctx context.Context, title string) ([]*models.Movie, error) {
	return s.find(ctx, models.MovieFilter{Title: &title},
		"no movies found with title containing: %s", title)
}

func (s *Service) ListByGenreAndReleaseYear(ctx context.Context, genre string, year int) ([]*models.Movie, error) {
	return s.find(ctx, models.MovieFilter{Genre: &genre, ReleaseYear: &year},
		"no movies found for genre: %s and release year: %d", genre, year)
}

// find runs a filtered scan and reports an empty result as *NotFoundError.
func (s *Service) find(ctx context.Context, f models.MovieFilter, format string, args ...any) ([]*models.Movie, error) {
	movies, err := s.store.List(ctx, f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find movies")
	}
	if len(movies) == 0 {
		return nil, notFound(format, args...)
	}
	return movies, nil
}
