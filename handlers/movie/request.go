package movie

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/webtor-io/movie-catalog/models"
)

type RequestMovie struct {
	Title       string `json:"title" validate:"required,notblank,min=2,max=100"`
	Genre       string `json:"genre" validate:"required,notblank,min=2,max=50"`
	ReleaseYear *int   `json:"releaseYear" validate:"required,min=1800,max=2100"`
	Rating      *int   `json:"rating" validate:"required,min=0,max=10"`
}

func (s *RequestMovie) ToModel() *models.Movie {
	return &models.Movie{
		Title:       s.Title,
		Genre:       s.Genre,
		ReleaseYear: *s.ReleaseYear,
		Rating:      *s.Rating,
	}
}

type ResponseMovie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	ReleaseYear int    `json:"releaseYear"`
	Rating      int    `json:"rating"`
}

func NewResponseMovie(m *models.Movie) ResponseMovie {
	return ResponseMovie{
		ID:          m.ID,
		Title:       m.Title,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
	}
}

func NewResponseMovies(movies []*models.Movie) []ResponseMovie {
	res := make([]ResponseMovie, 0, len(movies))
	for _, m := range movies {
		res = append(res, NewResponseMovie(m))
	}
	return res
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var rangeMessages = map[string]string{
	"title":       "title must be between 2 and 100 characters",
	"genre":       "genre must be between 2 and 50 characters",
	"releaseYear": "releaseYear must be between 1800 and 2100",
	"rating":      "rating must be between 0 and 10",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks r against the movie field constraints and returns one
// FieldError per invalid field, in declaration order. Nil means r is valid.
func Validate(r *RequestMovie) []FieldError {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}
	res := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		res = append(res, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return res
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	}
	if msg, ok := rangeMessages[fe.Field()]; ok {
		return msg
	}
	return fe.Field() + " is invalid"
}
