package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "*******5678", MaskPhone("010-1234-5678"))
	assert.Equal(t, "*******7890", MaskPhone("+82 10 678 7890"))
	assert.Equal(t, "***", MaskPhone("123"))
	assert.Equal(t, "", MaskPhone(""))
	assert.Equal(t, "", MaskPhone("no digits here"))
}
