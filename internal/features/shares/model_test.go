package shares

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_IsExpired_BeforeAndAfterExpiry(t *testing.T) {
	now := time.Now().UTC()
	share := &Share{ExpiresAt: now.Add(1 * time.Hour)}

	assert.False(t, share.IsExpired(now))
	assert.False(t, share.IsExpired(share.ExpiresAt))
	assert.True(t, share.IsExpired(now.Add(1*time.Hour+time.Second)))
}

func Test_IsPasswordProtected_OnlyWhenHashPresent(t *testing.T) {
	empty := ""
	hash := "$2a$10$abcdefghijklmnopqrstuv"

	assert.False(t, (&Share{}).IsPasswordProtected())
	assert.False(t, (&Share{PasswordHash: &empty}).IsPasswordProtected())
	assert.True(t, (&Share{PasswordHash: &hash}).IsPasswordProtected())
}

func Test_TotalSizeBytes_SumsAllFiles(t *testing.T) {
	share := &Share{
		Files: []ShareFile{
			{SizeBytes: 100},
			{SizeBytes: 200},
			{SizeBytes: 300},
		},
	}

	assert.Equal(t, int64(600), share.TotalSizeBytes())
}
