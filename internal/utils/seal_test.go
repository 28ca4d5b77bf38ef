package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = bytes.Repeat([]byte{0x42}, 32)

func TestSealOpen(t *testing.T) {
	payload := []byte(`{"income":{"salary":20000}}`)
	aad := []byte("assessment-1")

	sealed, err := Seal(payload, testKey, aad)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "salary")

	opened, err := Open(sealed, testKey, aad)
	require.NoError(t, err)
	assert.Equal(t, payload, opened)
}

func TestSeal_UsesFreshNonce(t *testing.T) {
	a, err := Seal([]byte("same"), testKey, nil)
	require.NoError(t, err)
	b, err := Seal([]byte("same"), testKey, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpen_Rejects(t *testing.T) {
	sealed, err := Seal([]byte("payload"), testKey, []byte("a"))
	require.NoError(t, err)

	t.Run("wrong aad", func(t *testing.T) {
		_, err := Open(sealed, testKey, []byte("b"))
		assert.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := Open(sealed, bytes.Repeat([]byte{0x01}, 32), []byte("a"))
		assert.Error(t, err)
	})

	t.Run("tampered", func(t *testing.T) {
		tampered := append([]byte(nil), sealed...)
		tampered[len(tampered)-1] ^= 0xff
		_, err := Open(tampered, testKey, []byte("a"))
		assert.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Open(sealed[:10], testKey, []byte("a"))
		assert.Error(t, err)
	})

	t.Run("short key", func(t *testing.T) {
		_, err := Seal([]byte("x"), []byte("short"), nil)
		assert.Error(t, err)
	})
}

func TestSeal_EmptyInput(t *testing.T) {
	_, err := Seal(nil, testKey, nil)
	assert.Error(t, err)
}
