package movie

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func validRequest() *RequestMovie {
	return &RequestMovie{
		Title:       "Inception",
		Genre:       "Sci-Fi",
		ReleaseYear: intPtr(2010),
		Rating:      intPtr(9),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *RequestMovie)
		want   []FieldError
	}{
		{
			name:   "valid",
			modify: func(r *RequestMovie) {},
		},
		{
			name: "bounds are inclusive",
			modify: func(r *RequestMovie) {
				r.Title = strings.Repeat("a", 100)
				r.Genre = "ab"
				r.ReleaseYear = intPtr(2100)
				r.Rating = intPtr(0)
			},
		},
		{
			name:   "lower year bound",
			modify: func(r *RequestMovie) { r.ReleaseYear = intPtr(1800); r.Rating = intPtr(10) },
		},
		{
			name:   "length counts characters",
			modify: func(r *RequestMovie) { r.Title = "Élé" },
		},
		{
			name:   "empty title",
			modify: func(r *RequestMovie) { r.Title = "" },
			want:   []FieldError{{Field: "title", Message: "title is required"}},
		},
		{
			name:   "blank title",
			modify: func(r *RequestMovie) { r.Title = "   " },
			want:   []FieldError{{Field: "title", Message: "title is required"}},
		},
		{
			name:   "title too long",
			modify: func(r *RequestMovie) { r.Title = strings.Repeat("a", 101) },
			want:   []FieldError{{Field: "title", Message: "title must be between 2 and 100 characters"}},
		},
		{
			name:   "genre too long",
			modify: func(r *RequestMovie) { r.Genre = strings.Repeat("g", 51) },
			want:   []FieldError{{Field: "genre", Message: "genre must be between 2 and 50 characters"}},
		},
		{
			name:   "year out of range",
			modify: func(r *RequestMovie) { r.ReleaseYear = intPtr(2101) },
			want:   []FieldError{{Field: "releaseYear", Message: "releaseYear must be between 1800 and 2100"}},
		},
		{
			name:   "negative rating",
			modify: func(r *RequestMovie) { r.Rating = intPtr(-1) },
			want:   []FieldError{{Field: "rating", Message: "rating must be between 0 and 10"}},
		},
		{
			name:   "missing numbers",
			modify: func(r *RequestMovie) { r.ReleaseYear = nil; r.Rating = nil },
			want: []FieldError{
				{Field: "releaseYear", Message: "releaseYear is required"},
				{Field: "rating", Message: "rating is required"},
			},
		},
		{
			name:   "every field invalid",
			modify: func(r *RequestMovie) { r.Title = "I"; r.Genre = " "; r.ReleaseYear = intPtr(0); r.Rating = intPtr(42) },
			want: []FieldError{
				{Field: "title", Message: "title must be between 2 and 100 characters"},
				{Field: "genre", Message: "genre is required"},
				{Field: "releaseYear", Message: "releaseYear must be between 1800 and 2100"},
				{Field: "rating", Message: "rating must be between 0 and 10"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.modify(r)
			assert.Equal(t, tt.want, Validate(r))
		})
	}
}

func TestRequestMovie_ToModel(t *testing.T) {
	m := validRequest().ToModel()
	assert.Zero(t, m.ID)
	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, "Sci-Fi", m.Genre)
	assert.Equal(t, 2010, m.ReleaseYear)
	assert.Equal(t, 9, m.Rating)
}
