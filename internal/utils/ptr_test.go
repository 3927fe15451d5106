package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(""))
	assert.Nil(t, StringOrNil(" \t\n"))

	s := StringOrNil("  Alice ")
	if assert.NotNil(t, s) {
		assert.Equal(t, "Alice", *s)
	}
}

func TestPtr(t *testing.T) {
	p := Ptr(3)
	assert.Equal(t, 3, *p)
}
