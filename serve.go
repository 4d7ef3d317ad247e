package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
	wm "github.com/webtor-io/movie-catalog/handlers/movie"
	"github.com/webtor-io/movie-catalog/services/metrics"
	"github.com/webtor-io/movie-catalog/services/migration"
	"github.com/webtor-io/movie-catalog/services/movie"
	w "github.com/webtor-io/movie-catalog/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = movie.RegisterFlags(c.Flags)
	c.Flags = migration.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	var pg *cs.PG
	if c.String(movie.StoreFlag) == movie.StorePG {
		// Setting DB
		pg = cs.NewPG(c)
		defer pg.Close()

		// Setting Migrations
		err := pgMigrate(c)
		if err != nil {
			return err
		}
	}

	// Setting Store
	st, err := movie.NewStore(c, pg)
	if err != nil {
		return err
	}
	defer st.Close()

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Metrics
	m := metrics.New()

	// Setting Gin
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(w.RequestID(), w.Logger(), w.Recovery(), m.Middleware())
	m.RegisterHandler(r)

	// Setting Web
	web, err := w.New(c, r)
	if err != nil {
		return err
	}
	servers = append(servers, web)
	defer web.Close()

	// Setting MovieHandler
	wm.RegisterHandler(r, movie.New(st))

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
