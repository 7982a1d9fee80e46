package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	for i := 0; i < 10; i++ {
		parts := strings.Split(GetRandomName(), " ")
		assert.Equal(t, 2, len(parts))
		assert.Contains(t, adjectives, parts[0])
		assert.Contains(t, figures, parts[1])
	}
}
