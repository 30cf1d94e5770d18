package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5))
	assert.Equal(t, "héllo...", Truncate("héllo wörld", 5))
	assert.Equal(t, "", Truncate("", 5))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestXSSSanitize(t *testing.T) {
	assert.Equal(t, "hello", XSSSanitize("<script>alert(1)</script>hello"))
	assert.Equal(t, "plain text", XSSSanitize("plain text"))
}
