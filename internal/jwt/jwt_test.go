package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignAndValidate(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)

	privateKey = key
	publicKey = &key.PublicKey

	signed, err := Sign(42)
	assert.NoError(t, err)
	assert.NotEqual(t, "", signed)

	playerID, err := ValidPlayerID(signed)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), playerID)

	_, err = ValidPlayerID("not-a-jwt")
	assert.Error(t, err)
}

func TestValidPlayerID_wrongKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)

	privateKey = key
	publicKey = &key.PublicKey

	signed, err := Sign(42)
	assert.NoError(t, err)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)
	publicKey = &otherKey.PublicKey

	_, err = ValidPlayerID(signed)
	assert.Error(t, err)
}
