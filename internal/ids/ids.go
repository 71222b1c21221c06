package ids

import "github.com/segmentio/ksuid"

// New returns a fresh K-sortable unique identifier. Used for surrogate
// row IDs; never for session tokens, which need full CSPRNG entropy.
func New() string {
	return ksuid.New().String()
}
