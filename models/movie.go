package models

import (
	"context"
	"strings"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

type Movie struct {
	tableName struct{} `pg:"movie"`

	ID          int64  `pg:"movie_id,pk"`
	Title       string `pg:"title,notnull"`
	Genre       string `pg:"genre,notnull"`
	ReleaseYear int    `pg:"release_year,notnull,use_zero"`
	Rating      int    `pg:"rating,notnull,use_zero"`
}

// MovieFilter narrows a movie scan. Nil fields are ignored, set fields are
// combined with AND. Title is matched as a case-insensitive substring, see
// TitleContains.
type MovieFilter struct {
	Genre       *string
	ReleaseYear *int
	Rating      *int
	Title       *string
}

func (s *Movie) SameFields(o *Movie) bool {
	return s.Title == o.Title &&
		s.Genre == o.Genre &&
		s.ReleaseYear == o.ReleaseYear &&
		s.Rating == o.Rating
}

// TitleContains reports whether title holds q as a substring, ignoring case
// across the whole of Unicode.
func TitleContains(title, q string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(q))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern builds a substring pattern for LIKE/ILIKE with backslash as
// the escape character, so % and _ in s match literally.
func LikePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err was caused by a unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr pg.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolationCode
	}
	return false
}

func CreateMovie(ctx context.Context, db *pg.DB, m *Movie) error {
	_, err := db.Model(m).
		Context(ctx).
		Returning("*").
		Insert()
	return err
}

// UpdateMovie overwrites all editable columns. Returns false if no row
// with the given ID exists.
func UpdateMovie(ctx context.Context, db *pg.DB, m *Movie) (bool, error) {
	res, err := db.Model(m).
		Context(ctx).
		Column("title", "genre", "release_year", "rating").
		WherePK().
		Update()
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func GetMovieByID(ctx context.Context, db *pg.DB, id int64) (*Movie, error) {
	m := new(Movie)
	err := db.Model(m).
		Context(ctx).
		Where("movie_id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func MovieExists(ctx context.Context, db *pg.DB, id int64) (bool, error) {
	return db.Model((*Movie)(nil)).
		Context(ctx).
		Where("movie_id = ?", id).
		Exists()
}

// MovieExistsByFields checks for a movie with exactly the same title, genre,
// release year and rating.
func MovieExistsByFields(ctx context.Context, db *pg.DB, m *Movie) (bool, error) {
	return db.Model((*Movie)(nil)).
		Context(ctx).
		Where("title = ?", m.Title).
		Where("genre = ?", m.Genre).
		Where("release_year = ?", m.ReleaseYear).
		Where("rating = ?", m.Rating).
		Exists()
}

func DeleteMovie(ctx context.Context, db *pg.DB, id int64) error {
	_, err := db.Model((*Movie)(nil)).
		Context(ctx).
		Where("movie_id = ?", id).
		Delete()
	return err
}

func DeleteAllMovies(ctx context.Context, db *pg.DB) error {
	_, err := db.Model((*Movie)(nil)).
		Context(ctx).
		Where("TRUE").
		Delete()
	return err
}

func CountMovies(ctx context.Context, db *pg.DB) (int, error) {
	return db.Model((*Movie)(nil)).
		Context(ctx).
		Count()
}

func GetMovies(ctx context.Context, db *pg.DB, f MovieFilter) ([]*Movie, error) {
	var movies []*Movie

	err := db.Model(&movies).
		Context(ctx).
		Apply(f.apply).
		Order("movie_id ASC").
		Select()

	if err != nil {
		return nil, err
	}

	return movies, nil
}

func (f MovieFilter) apply(q *orm.Query) (*orm.Query, error) {
	if f.Genre != nil {
		q = q.Where("genre = ?", *f.Genre)
	}
	if f.ReleaseYear != nil {
		q = q.Where("release_year = ?", *f.ReleaseYear)
	}
	if f.Rating != nil {
		q = q.Where("rating = ?", *f.Rating)
	}
	if f.Title != nil {
		q = q.Where("title ILIKE ?", LikePattern(*f.Title))
	}
	return q, nil
}
