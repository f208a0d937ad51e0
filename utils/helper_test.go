package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBelongsToUser(t *testing.T) {
	assert.True(t, KeyBelongsToUser("uploads/image/42/1700000000_abc.jpg", 42))
	assert.True(t, KeyBelongsToUser("users/7/avatar/1700000000.png", 7))

	assert.False(t, KeyBelongsToUser("uploads/image/42/1700000000_abc.jpg", 43))
	assert.False(t, KeyBelongsToUser("users/7/avatar/1700000000.png", 70))
	assert.False(t, KeyBelongsToUser("random/path.jpg", 1))
	assert.False(t, KeyBelongsToUser("", 1))
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode()
	assert.Len(t, code, 10)
	assert.Equal(t, "REF-", code[:4])

	assert.NotEqual(t, GenerateReferralCode(), GenerateReferralCode())
}
