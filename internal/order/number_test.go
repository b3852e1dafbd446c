package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	n := GenerateOrderNumber()

	assert.True(t, strings.HasPrefix(n, "ORD-"))
	assert.Len(t, n, len("ORD-")+numberLength)

	for _, r := range strings.TrimPrefix(n, "ORD-") {
		assert.Contains(t, numberAlphabet, string(r))
	}
}

func TestGenerateOrderNumber_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[GenerateOrderNumber()] = true
	}
	assert.Greater(t, len(seen), 90, "collisions should be rare")
}
