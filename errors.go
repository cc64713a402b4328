package anon

import "errors"

// Sentinel errors returned by mapper operations. Call sites wrap these with
// fmt.Errorf("%w: ...") to attach context; callers should use errors.Is to
// classify a failure.
var (
	// ErrInvalidRange is returned when a bounded mapper is constructed with
	// lower > upper.
	ErrInvalidRange = errors.New("anon: lower bound exceeds upper bound")

	// ErrModeConflict is returned when a mapper that has already served a
	// Map/MapPrefix call receives a MapLex/MapPrefixLex call, or vice
	// versa, or when SetUsed is called after the mapper has left the INIT
	// state.
	ErrModeConflict = errors.New("anon: mapper mode already locked")

	// ErrNotMarked is returned by MapLex/MapPrefixLex when the given input
	// was never declared via SetUsed before the mapper's lex mode was
	// finalized.
	ErrNotMarked = errors.New("anon: value not present in used set")

	// ErrRangeExhausted is returned when a mapper cannot produce another
	// distinct output image: either Map's resample loop cannot find an
	// unused image, or MapLex's finalization needs more distinct images
	// than the codomain holds.
	ErrRangeExhausted = errors.New("anon: output range exhausted")

	// ErrRandomnessUnavailable is returned when the system randomness
	// source fails while seeding a Key or a PRNG.
	ErrRandomnessUnavailable = errors.New("anon: randomness source unavailable")
)
