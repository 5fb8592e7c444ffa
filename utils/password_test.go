package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier(t *testing.T) {
	v := BcryptVerifier{Cost: bcrypt.MinCost}
	hash, err := v.Hash("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, v.Verify(hash, "hunter2"))
	assert.False(t, v.Verify(hash, "hunter3"))
	assert.False(t, v.Verify("not-a-hash", "hunter2"))
}

func TestBcryptVerifier_SaltsEachHash(t *testing.T) {
	v := BcryptVerifier{Cost: bcrypt.MinCost}
	a, err := v.Hash("same")
	require.NoError(t, err)
	b, err := v.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPlainVerifier(t *testing.T) {
	var v PlainVerifier
	stored, err := v.Hash("pw")
	require.NoError(t, err)
	assert.Equal(t, "pw", stored)
	assert.True(t, v.Verify(stored, "pw"))
	assert.False(t, v.Verify(stored, "PW"))
}

func TestNewCredentialVerifier(t *testing.T) {
	cases := map[string]interface{}{
		"":        BcryptVerifier{},
		"bcrypt":  BcryptVerifier{},
		" BCRYPT": BcryptVerifier{},
		"plain":   PlainVerifier{},
	}
	for scheme, want := range cases {
		got, err := NewCredentialVerifier(scheme)
		require.NoError(t, err, scheme)
		assert.IsType(t, want, got, scheme)
	}

	_, err := NewCredentialVerifier("md5")
	assert.Error(t, err)
}
