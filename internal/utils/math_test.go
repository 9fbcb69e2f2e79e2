package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomInt(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomInt(3, 7)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 7)
	}

	assert.Equal(t, 5, RandomInt(5, 5))
	assert.Equal(t, 9, RandomInt(9, 2), "inverted bounds return min")
}

func TestRandomFloat(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomFloat()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSecureRandomInt(t *testing.T) {
	v, err := SecureRandomInt(1, 10)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, v, 1)
	assert.LessOrEqual(t, v, 10)

	_, err = SecureRandomInt(10, 1)
	assert.Error(t, err)
}
