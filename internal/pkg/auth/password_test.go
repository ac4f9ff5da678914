package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-Pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-Pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-Pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-Pass"))
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pw, err := GenerateTempPassword()
		require.NoError(t, err)
		assert.Len(t, pw, TempPasswordLength)
		for _, ch := range pw {
			assert.True(t, strings.ContainsRune(tempPasswordChars, ch), "unexpected character %q", ch)
		}
		seen[pw] = true
	}
	assert.Greater(t, len(seen), 1, "passwords must not repeat every time")
}
