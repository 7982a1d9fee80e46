package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomEmail(t *testing.T) {
	email := RandomEmail()
	assert.True(t, strings.HasSuffix(email, "@example.domain"))
	assert.NotEqual(t, email, RandomEmail())
}
