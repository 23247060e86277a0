package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyCipherRoundTrip(t *testing.T) {
	c := NewLegacyCipher("some-shared-secret")

	record, err := c.Encrypt("hunter2")
	require.NoError(t, err)
	assert.True(t, IsLegacyRecord(record))

	plaintext, err := c.Decrypt(record)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plaintext)
}

func TestLegacyCipherCompare(t *testing.T) {
	c := NewLegacyCipher("some-shared-secret")

	record, err := c.Encrypt("hunter2")
	require.NoError(t, err)

	match, err := c.Compare(record, "hunter2")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = c.Compare(record, "hunter3")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestLegacyCipherWrongKey(t *testing.T) {
	record, err := NewLegacyCipher("secret-a").Encrypt("hunter2")
	require.NoError(t, err)

	_, err = NewLegacyCipher("secret-b").Decrypt(record)
	assert.Error(t, err)
}

func TestIsLegacyRecord(t *testing.T) {
	assert.True(t, IsLegacyRecord("enc:abcdef"))
	assert.False(t, IsLegacyRecord("$2a$10$abcdefghijklmnopqrstuv"))
	assert.False(t, IsLegacyRecord(""))
}

func TestDecryptRejectsNonLegacyRecord(t *testing.T) {
	c := NewLegacyCipher("some-shared-secret")
	_, err := c.Decrypt("$2a$10$abcdefghijklmnopqrstuv")
	assert.Error(t, err)
}
