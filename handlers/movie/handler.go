package movie

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/movie-catalog/models"
	ms "github.com/webtor-io/movie-catalog/services/movie"
)

type Handler struct {
	movies *ms.Service
}

func RegisterHandler(r *gin.Engine, svc *ms.Service) {
	h := &Handler{
		movies: svc,
	}

	gr := r.Group("/movies")
	gr.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	gr.OPTIONS("", h.preflight)
	gr.OPTIONS("/:id", h.preflight)
	gr.POST("", h.add)
	gr.GET("", h.list)
	gr.DELETE("", h.deleteAll)
	gr.GET("/count", h.count)
	gr.GET("/:id", h.get)
	gr.PUT("/:id", h.update)
	gr.DELETE("/:id", h.delete)
}

type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CountResponse struct {
	Count int `json:"count"`
}

// ListQuery holds the optional filters of GET /movies. Absent params stay nil.
type ListQuery struct {
	Genre       *string `form:"genre"`
	ReleaseYear *int    `form:"releaseYear"`
	Rating      *int    `form:"rating"`
	Title       *string `form:"title"`
}

type movieURI struct {
	ID int64 `uri:"id"`
}

// preflight answers OPTIONS sent without an Origin. cors aborts the rest itself.
func (s *Handler) preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (s *Handler) add(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}
	m, err := s.movies.Add(c.Request.Context(), req.ToModel())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponseMovie(m))
}

func (s *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()
	q := ListQuery{}
	if err := c.ShouldBindQuery(&q); err != nil {
		log.WithError(err).Debug("failed to bind movie query")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid query parameters: releaseYear and rating must be integers",
		})
		return
	}

	var (
		movies []*models.Movie
		err    error
	)
	switch {
	case q.Genre != nil && q.ReleaseYear != nil:
		movies, err = s.movies.ListByGenreAndReleaseYear(ctx, *q.Genre, *q.ReleaseYear)
	case q.Genre != nil:
		movies, err = s.movies.ListByGenre(ctx, *q.Genre)
	case q.ReleaseYear != nil:
		movies, err = s.movies.ListByReleaseYear(ctx, *q.ReleaseYear)
	case q.Rating != nil:
		movies, err = s.movies.ListByRating(ctx, *q.Rating)
	case q.Title != nil:
		movies, err = s.movies.ListByTitle(ctx, *q.Title)
	default:
		movies, err = s.movies.List(ctx)
	}
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponseMovies(movies))
}

func (s *Handler) count(c *gin.Context) {
	n, err := s.movies.Count(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: n})
}

func (s *Handler) get(c *gin.Context) {
	id, ok := s.id(c)
	if !ok {
		return
	}
	m, err := s.movies.Get(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponseMovie(m))
}

func (s *Handler) update(c *gin.Context) {
	id, ok := s.id(c)
	if !ok {
		return
	}
	req, ok := s.bind(c)
	if !ok {
		return
	}
	msg, err := s.movies.Update(c.Request.Context(), id, req.ToModel())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func (s *Handler) delete(c *gin.Context) {
	id, ok := s.id(c)
	if !ok {
		return
	}
	msg, err := s.movies.Delete(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func (s *Handler) deleteAll(c *gin.Context) {
	msg, err := s.movies.DeleteAll(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// bind decodes and validates the request body. On failure it writes a 400
// response and returns false.
func (s *Handler) bind(c *gin.Context) (*RequestMovie, bool) {
	req := &RequestMovie{}
	if err := c.ShouldBindJSON(req); err != nil {
		log.WithError(err).Debug("failed to decode movie request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "malformed request body"})
		return nil, false
	}
	if errs := Validate(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "validation failed",
			Errors:  errs,
		})
		return nil, false
	}
	return req, true
}

func (s *Handler) id(c *gin.Context) (int64, bool) {
	u := movieURI{}
	if err := c.ShouldBindUri(&u); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid movie id: " + c.Param("id")})
		return 0, false
	}
	return u.ID, true
}

func (s *Handler) renderError(c *gin.Context, err error) {
	var (
		nf *ms.NotFoundError
		ce *ms.ConflictError
	)
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: nf.Error()})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, ErrorResponse{Message: ce.Error()})
	default:
		log.WithError(err).
			WithField("path", c.FullPath()).
			Error("failed to process movie request")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}
