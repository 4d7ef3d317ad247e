package movie

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/movie-catalog/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS movie (
	movie_id     INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT    NOT NULL,
	genre        TEXT    NOT NULL,
	release_year INTEGER NOT NULL,
	rating       INTEGER NOT NULL,
	UNIQUE (title, genre, release_year, rating)
)`

const sqliteColumns = "movie_id, title, genre, release_year, rating"

// SQLiteStore keeps movies in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "movies.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !os.IsExist(err) {
		return nil, errors.Wrap(err, "failed to create sqlite dir")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite")
	}
	// A single connection serializes writers and keeps :memory: databases
	// shared between calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create movie table")
	}
	log.WithField("path", path).Info("sqlite movie store opened")
	return &SQLiteStore{db: db}, nil
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"))
}

func (s *SQLiteStore) Create(ctx context.Context, m *models.Movie) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO movie (title, genre, release_year, rating) VALUES (?, ?, ?, ?)`,
		m.Title, m.Genre, m.ReleaseYear, m.Rating)
	if isSQLiteUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "failed to insert movie")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "failed to get inserted movie id")
	}
	m.ID = id
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, m *models.Movie) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE movie SET title = ?, genre = ?, release_year = ?, rating = ? WHERE movie_id = ?`,
		m.Title, m.Genre, m.ReleaseYear, m.Rating, m.ID)
	if isSQLiteUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrapf(err, "failed to update movie %d", m.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to get affected rows")
	}
	if n == 0 {
		return ErrMissing
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (*models.Movie, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteColumns+` FROM movie WHERE movie_id = ?`, id)
	m := &models.Movie{}
	err := row.Scan(&m.ID, &m.Title, &m.Genre, &m.ReleaseYear, &m.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get movie %d", id)
	}
	return m, nil
}

func (s *SQLiteStore) exists(ctx context.Context, where string, args ...any) (bool, error) {
	var found bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM movie WHERE `+where+`)`, args...).Scan(&found)
	if err != nil {
		return false, errors.Wrap(err, "failed to check movie existence")
	}
	return found, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "movie_id = ?", id)
}

func (s *SQLiteStore) ExistsByFields(ctx context.Context, m *models.Movie) (bool, error) {
	return s.exists(ctx, "title = ? AND genre = ? AND release_year = ? AND rating = ?",
		m.Title, m.Genre, m.ReleaseYear, m.Rating)
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM movie WHERE movie_id = ?`, id); err != nil {
		return errors.Wrapf(err, "failed to delete movie %d", id)
	}
	return nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM movie`); err != nil {
		return errors.Wrap(err, "failed to delete movies")
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, f models.MovieFilter) ([]*models.Movie, error) {
	var (
		conds []string
		args  []any
	)
	if f.Genre != nil {
		conds = append(conds, "genre = ?")
		args = append(args, *f.Genre)
	}
	if f.ReleaseYear != nil {
		conds = append(conds, "release_year = ?")
		args = append(args, *f.ReleaseYear)
	}
	if f.Rating != nil {
		conds = append(conds, "rating = ?")
		args = append(args, *f.Rating)
	}
	// sqlite LIKE folds ASCII only, titles are matched after the scan.
	q := `SELECT ` + sqliteColumns + ` FROM movie`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY movie_id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select movies")
	}
	defer func() { _ = rows.Close() }()

	movies := []*models.Movie{}
	for rows.Next() {
		m := &models.Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Genre, &m.ReleaseYear, &m.Rating); err != nil {
			return nil, errors.Wrap(err, "failed to scan movie")
		}
		if f.Title != nil && !models.TitleContains(m.Title, *f.Title) {
			continue
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate movies")
	}
	return movies, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movie`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "failed to count movies")
	}
	return n, nil
}

func (s *SQLiteStore) Close() {
	if err := s.db.Close(); err != nil {
		log.WithError(err).Warn("failed to close sqlite movie store")
	}
}

var _ Store = (*SQLiteStore)(nil)
