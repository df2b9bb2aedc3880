package knowledge

import "errors"

var (
	ErrNoDocuments = errors.New("no documents provided")
	ErrNoChunks    = errors.New("no valid chunks produced from content")
	ErrInvalidURL  = errors.New("invalid url")
	ErrFetchFailed = errors.New("failed to fetch url")
	ErrEmptyQuery  = errors.New("empty query")
)
