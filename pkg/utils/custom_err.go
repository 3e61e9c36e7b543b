package utils

import "errors"

var (
	ErrCategoryRequired    = errors.New("category is required")
	ErrInvalidCount        = errors.New("invalid question count")
	ErrUpstreamFailure     = errors.New("upstream generation failed")
	ErrMalformedAIResponse = errors.New("malformed response from AI provider")
	ErrUnsupportedProvider = errors.New("unsupported question provider")
)
