package movie

import "fmt"

// NotFoundError is returned when a movie id is unknown or a filtered
// lookup matched nothing.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

func notFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// ConflictError is returned when a write would duplicate an existing movie.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string {
	return e.msg
}

const alreadyExistsMessage = "movie already exists in the database"

func conflict() *ConflictError {
	return &ConflictError{msg: alreadyExistsMessage}
}
