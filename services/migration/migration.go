package migration

import (
	"github.com/go-pg/migrations/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

const MigrationsDirFlag = "migrations-dir"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   MigrationsDirFlag,
			Usage:  "directory with sql migrations",
			Value:  "migrations",
			EnvVar: "MIGRATIONS_DIR",
		},
	)
}

type PGMigration struct {
	db  *cs.PG
	col *migrations.Collection
	dir string
}

func NewPGMigration(db *cs.PG, col *migrations.Collection, dir string) *PGMigration {
	return &PGMigration{
		db:  db,
		col: col,
		dir: dir,
	}
}

func (s *PGMigration) Run(a ...string) error {
	db := s.db.Get()
	if db == nil {
		log.Infof("DB not initialized, skipping migration")
		return nil
	}
	err := s.col.DiscoverSQLMigrations(s.dir)
	if err != nil {
		return errors.Wrapf(err, "failed to discover migrations in %v", s.dir)
	}
	_, _, err = s.col.Run(db, "init")
	if err != nil {
		return errors.Wrap(err, "failed to init DB PGMigrations")
	}
	oldVersion, newVersion, err := s.col.Run(db, a...)
	if err != nil {
		return errors.Wrapf(err, "failed to perform PGMigration from %v to %v", oldVersion, newVersion)
	}
	if newVersion != oldVersion {
		log.Infof("DB migrated from version %d to %d", oldVersion, newVersion)
	} else {
		log.Infof("DB PGMigration version is %d", oldVersion)
	}
	return nil
}
