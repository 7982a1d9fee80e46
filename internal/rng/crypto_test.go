package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	c := Crypto{}
	for i := 0; i < 100; i++ {
		n := c.Intn(10)
		assert.True(t, n >= 0 && n < 10)
	}
}

func TestCrypto_Seed(t *testing.T) {
	c := Crypto{}
	for i := 0; i < 100; i++ {
		assert.True(t, c.Seed() >= 0)
	}
}
