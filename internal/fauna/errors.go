package fauna

import "github.com/faunadex/faunadex-go/internal/errors"

// Sentinel errors for the recognition pipeline. Callers branch on these with
// errors.Is; the categorized wraps added at call sites carry diagnostics.
var (
	// ErrModelNotReady: the detector is unavailable. Fatal for the current
	// frame, not for the session.
	ErrModelNotReady = errors.NewStd("recognition model is not ready")

	// ErrInvalidImage: the frame payload could not be decoded. Fatal for the
	// current frame.
	ErrInvalidImage = errors.NewStd("invalid image data")

	// ErrSessionNotFound: the session does not exist or has ended. Fatal for
	// the request only.
	ErrSessionNotFound = errors.NewStd("session not found or ended")

	// ErrAnimalNotFound: no catalog entry matches the requested id or name.
	ErrAnimalNotFound = errors.NewStd("animal not found")

	// ErrDuplicateName: a catalog entry with the same canonical name already
	// exists. Losers of a concurrent create re-read the winner's entry.
	ErrDuplicateName = errors.NewStd("animal name already exists")
)
