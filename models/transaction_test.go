package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriod(t *testing.T) {
	assert.Equal(t, "2025-11", Period("2025-11-03"))
	assert.Equal(t, "2025-01", Period("2025-01-31"))
	// malformed input is returned as-is instead of panicking
	assert.Equal(t, "2025", Period("2025"))
	assert.Equal(t, "", Period(""))
}

func TestIsValidType(t *testing.T) {
	for _, v := range ValidTypes {
		assert.True(t, IsValidType(v), string(v))
	}
	assert.False(t, IsValidType("gasto"))
	assert.False(t, IsValidType(""))
}
