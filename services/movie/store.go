package movie

import (
	"context"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/movie-catalog/models"
)

var (
	// ErrDuplicate is returned by a Store when a write would break the
	// uniqueness of (title, genre, release year, rating).
	ErrDuplicate = errors.New("duplicate movie")
	// ErrMissing is returned by Store.Update when the row is gone.
	ErrMissing = errors.New("movie missing")
)

// Store is the record store behind Service. Get returns nil, nil when
// there is no such movie. List returns movies ordered by ID.
type Store interface {
	Create(ctx context.Context, m *models.Movie) error
	Update(ctx context.Context, m *models.Movie) error
	Get(ctx context.Context, id int64) (*models.Movie, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByFields(ctx context.Context, m *models.Movie) (bool, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	List(ctx context.Context, f models.MovieFilter) ([]*models.Movie, error)
	Count(ctx context.Context) (int, error)
	Close()
}

const (
	StoreFlag      = "store"
	SQLitePathFlag = "sqlite-path"
)

const (
	StorePG     = "pg"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   StoreFlag,
			Usage:  "movie store (pg, sqlite, memory)",
			Value:  StorePG,
			EnvVar: "MOVIE_STORE",
		},
		cli.StringFlag{
			Name:   SQLitePathFlag,
			Usage:  "sqlite database path",
			Value:  "movies.db",
			EnvVar: "MOVIE_SQLITE_PATH",
		},
	)
}

// NewStore builds the store selected by StoreFlag. pg is only used by the
// pg store and may be nil otherwise.
func NewStore(c *cli.Context, pg *cs.PG) (Store, error) {
	switch c.String(StoreFlag) {
	case StorePG:
		if pg == nil {
			return nil, errors.New("pg store requires db connection")
		}
		return NewPGStore(pg), nil
	case StoreSQLite:
		return NewSQLiteStore(c.String(SQLitePathFlag))
	case StoreMemory:
		return NewMemoryStore(), nil
	}
	return nil, errors.Errorf("unknown movie store %q", c.String(StoreFlag))
}
