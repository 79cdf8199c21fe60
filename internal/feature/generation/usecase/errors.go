package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientCredits is returned when the user's balance cannot
	// cover the generation cost. The balance is left untouched.
	ErrInsufficientCredits = errors.New("not enough credits")

	// ErrReferenceNotFound is returned when the named reference image does
	// not exist in the upload store.
	ErrReferenceNotFound = errors.New("reference image not found")

	// ErrInvalidReferenceImage is returned when the reference file cannot be
	// decoded as an image.
	ErrInvalidReferenceImage = errors.New("reference file is not a valid image")

	// ErrMissingStyleFields is returned when theme or look is empty.
	ErrMissingStyleFields = errors.New("theme and look are required")

	// ErrPolicyBlocked is returned when the remote model refused the request
	// on safety grounds: the response carries a prompt-feedback block and no
	// candidates. This is a distinct outcome, not a generic upstream failure.
	ErrPolicyBlocked = errors.New("generation blocked by safety policy")

	// ErrEmptyResponse is returned when a 2xx response carries no image data.
	ErrEmptyResponse = errors.New("generation returned no image data")

	// ErrUpstreamTimeout is returned when the generation call exceeds its
	// read timeout.
	ErrUpstreamTimeout = errors.New("generation request timed out")

	// ErrUpstreamUnreachable is returned when the generation endpoint cannot
	// be reached at all.
	ErrUpstreamUnreachable = errors.New("generation service unreachable")
)

// UpstreamError reports a non-2xx response from the generation API. The
// status and (truncated) body are preserved verbatim for logging; the client
// only ever sees the status code.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation API returned status %d: %s", e.StatusCode, e.Body)
}
