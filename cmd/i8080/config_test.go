package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressFlag(t *testing.T) {
	var a address

	assert.NoError(t, a.Set("0100"))
	assert.Equal(t, address(0x100), a)
	assert.Equal(t, "0100", a.String())

	assert.NoError(t, a.Set("0xFFFF"))
	assert.Equal(t, address(0xffff), a)

	assert.Error(t, a.Set("10000"))
	assert.Error(t, a.Set("zz"))
}
