package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "attendee credential length", length: 12},
		{name: "single character", length: 1},
		{name: "long password", length: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := GeneratePassword(tt.length)
			require.NoError(t, err)
			assert.Len(t, password, tt.length)
			for _, r := range password {
				assert.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected character %q", r)
			}
		})
	}
}

func TestGeneratePassword_InvalidLength(t *testing.T) {
	_, err := GeneratePassword(0)
	assert.Error(t, err)

	_, err = GeneratePassword(-3)
	assert.Error(t, err)
}

func TestGeneratePassword_Unique(t *testing.T) {
	first, err := GeneratePassword(12)
	require.NoError(t, err)
	second, err := GeneratePassword(12)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Ab3dEf6hIj9k")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=2$"))
	assert.NotContains(t, hash, "Ab3dEf6hIj9k")

	// Same password twice gives different salts
	hash2, err := HashPassword("Ab3dEf6hIj9k")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Ab3dEf6hIj9k")
	require.NoError(t, err)

	tests := []struct {
		name      string
		password  string
		hash      string
		wantMatch bool
		wantErr   bool
	}{
		{name: "correct password", password: "Ab3dEf6hIj9k", hash: hash, wantMatch: true},
		{name: "wrong password", password: "Ab3dEf6hIj9K", hash: hash, wantMatch: false},
		{name: "not an argon2 hash", password: "x", hash: "$2a$10$abc", wantErr: true},
		{name: "bad parameters", password: "x", hash: "$argon2id$v=19$bogus$c2FsdA$aGFzaA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := VerifyPassword(tt.password, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, match)
		})
	}
}
