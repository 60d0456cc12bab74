package domain

import "errors"

var (
	// ErrInvalidOptions signals invalid search option values. It is raised
	// once when options are constructed, never mid-query.
	ErrInvalidOptions = errors.New("invalid search options")
	// ErrUnknownLocale signals a request for a locale with no built index.
	ErrUnknownLocale = errors.New("unknown locale")
	// ErrInvalidDocument signals a document that cannot be indexed.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidContent signals a content file that cannot be parsed.
	ErrInvalidContent = errors.New("invalid content file")
)
