package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	token, err := Generate(8)
	assert.NoError(t, err)
	assert.Equal(t, 8, len(token))

	other, err := Generate(8)
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)

	long, err := Generate(32)
	assert.NoError(t, err)
	assert.Equal(t, 32, len(long))
}
