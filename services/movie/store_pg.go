package movie

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/movie-catalog/models"
)

type PGStore struct {
	pg *cs.PG
}

func NewPGStore(pg *cs.PG) *PGStore {
	return &PGStore{pg: pg}
}

func (s *PGStore) db() (*pg.DB, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return db, nil
}

func (s *PGStore) Create(ctx context.Context, m *models.Movie) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	err = models.CreateMovie(ctx, db, m)
	if models.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *PGStore) Update(ctx context.Context, m *models.Movie) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	ok, err := models.UpdateMovie(ctx, db, m)
	if models.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if !ok {
		return ErrMissing
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id int64) (*models.Movie, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	return models.GetMovieByID(ctx, db, id)
}

func (s *PGStore) Exists(ctx context.Context, id int64) (bool, error) {
	db, err := s.db()
	if err != nil {
		return false, err
	}
	return models.MovieExists(ctx, db, id)
}

func (s *PGStore) ExistsByFields(ctx context.Context, m *models.Movie) (bool, error) {
	db, err := s.db()
	if err != nil {
		return false, err
	}
	return models.MovieExistsByFields(ctx, db, m)
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	return models.DeleteMovie(ctx, db, id)
}

func (s *PGStore) DeleteAll(ctx context.Context) error {
	db, err := s.db()
	if err != nil {
		return err
	}
	return models.DeleteAllMovies(ctx, db)
}

func (s *PGStore) List(ctx context.Context, f models.MovieFilter) ([]*models.Movie, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	return models.GetMovies(ctx, db, f)
}

func (s *PGStore) Count(ctx context.Context) (int, error) {
	db, err := s.db()
	if err != nil {
		return 0, err
	}
	return models.CountMovies(ctx, db)
}

// Close is a no-op, the connection pool is owned by the caller.
func (s *PGStore) Close() {}

var _ Store = (*PGStore)(nil)
