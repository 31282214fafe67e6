package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hashService := &HashService{}

	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{
			name:        "Valid password",
			password:    "supersecret",
			expectError: false,
		},
		{
			name:        "Empty password",
			password:    "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hashService.HashPassword(tt.password)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, hash)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, hash)
				assert.NotEqual(t, tt.password, hash)
			}
		})
	}
}

func TestHashPasswordSalted(t *testing.T) {
	hashService := &HashService{}

	first, err := hashService.HashPassword("supersecret")
	assert.NoError(t, err)
	second, err := hashService.HashPassword("supersecret")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hashService.ComparePassword(first, "supersecret"))
	assert.True(t, hashService.ComparePassword(second, "supersecret"))
}

func TestComparePassword(t *testing.T) {
	hashService := &HashService{}
	hash, err := hashService.HashPassword("supersecret")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		expected bool
	}{
		{
			name:     "Matching password",
			hash:     hash,
			password: "supersecret",
			expected: true,
		},
		{
			name:     "Wrong password",
			hash:     hash,
			password: "notsecret",
			expected: false,
		},
		{
			name:     "Garbage hash",
			hash:     "not-a-bcrypt-hash",
			password: "supersecret",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, hashService.ComparePassword(tt.hash, tt.password))
		})
	}
}
