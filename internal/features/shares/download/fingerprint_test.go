package shares_download

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Fingerprint_IsDeterministic(t *testing.T) {
	first := Fingerprint("203.0.113.7", "Mozilla/5.0")
	second := Fingerprint("203.0.113.7", "Mozilla/5.0")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func Test_Fingerprint_DiffersPerClient(t *testing.T) {
	base := Fingerprint("203.0.113.7", "Mozilla/5.0")

	assert.NotEqual(t, base, Fingerprint("203.0.113.8", "Mozilla/5.0"))
	assert.NotEqual(t, base, Fingerprint("203.0.113.7", "curl/8.0"))
}
