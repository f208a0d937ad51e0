package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsernamePattern(t *testing.T) {
	valid := []string{"alice", "Bob_99", "padelhall", "a1_b2_c3"}
	for _, username := range valid {
		assert.NoError(t, validateUsernamePattern(username), username)
	}

	invalid := map[string]string{
		"ab":                      "too short",
		"thisusernameiswaytoolong22": "too long",
		"1starts_with_digit":      "must start with a letter",
		"_underscore_first":       "must start with a letter",
		"has space":               "illegal character",
		"has-dash":                "illegal character",
		"admin":                   "reserved",
		"ROOT":                    "reserved regardless of case",
	}
	for username, reason := range invalid {
		assert.Error(t, validateUsernamePattern(username), reason)
	}
}
