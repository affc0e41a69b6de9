package errors

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrInvalid    = errors.New("invalid")
	ErrTooMany    = errors.New("too many requests")
	ErrInternal   = errors.New("internal")
	ErrExtraction = errors.New("extraction failed")
	ErrGeneration = errors.New("generation failed")
	ErrChat       = errors.New("chat failed")
	ErrQuiz       = errors.New("quiz generation failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}
