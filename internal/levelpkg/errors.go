package levelpkg

import "errors"

// Sentinel errors for the loader's fault classes: a missing required
// member, a malformed member, an unresolved shape reference, and invalid
// version, difficulty or target dimensions. The first three are wrapped with
// fmt.Errorf at the call site so errors.Is still matches while the message
// carries the offending name; the last three are returned unwrapped.
var (
	ErrMissingMember     = errors.New("levelpkg: required archive member missing")
	ErrMalformedJSON     = errors.New("levelpkg: malformed JSON member")
	ErrUnresolvedShape   = errors.New("levelpkg: shape id unresolved")
	ErrInvalidVersion    = errors.New("levelpkg: version must be >= 1")
	ErrInvalidDifficulty = errors.New("levelpkg: difficulty must be between 1 and 5")
	ErrTargetMismatch    = errors.New("levelpkg: target dimensions do not match rows/cols")
)
