// Package identity defines the client-side user identity and the
// deterministic email hash used as the join key with the profile service.
package identity

// Identity is the authenticated user's id + username pair. The id is a
// derived hash of the email: non-negative, deterministic, and not
// guaranteed unique. Collisions are accepted.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Hash maps an email string to a numeric user identifier. It iterates
// the string by code point, accumulating hash*31 + codepoint with 32-bit
// signed wraparound, and returns the absolute value of the final result.
// Total for any input, including the empty string.
func Hash(s string) int64 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	// Widen before negating: -MinInt32 does not fit in int32.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
