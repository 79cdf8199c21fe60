package usecase

import "errors"

var (
	// ErrEmptyPost is returned when the post caption is missing or blank.
	ErrEmptyPost = errors.New("post content is required")

	// ErrEmptyPrompt is returned when the chat prompt is missing or blank.
	ErrEmptyPrompt = errors.New("prompt content is required")

	// ErrUpstreamTimeout is returned when the completion call exceeds its
	// read timeout.
	ErrUpstreamTimeout = errors.New("text generation timed out")

	// ErrUpstreamUnreachable is returned when the completion endpoint cannot
	// be reached at all.
	ErrUpstreamUnreachable = errors.New("text generation service unreachable")
)
