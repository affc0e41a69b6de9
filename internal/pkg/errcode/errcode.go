package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrNotFound
	ErrInvalid
	ErrTooMany
	ErrInternal
	ErrInvalidFile
	ErrExtractionFailed
	ErrGenerationFailed
	ErrChatFailed
	ErrQuizFailed
	ErrSessionNotFound
	ErrNoDocument
)
