package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	fp := Line("Travel ₹200")
	assert.Len(t, fp, len("fl_")+16)
	assert.Equal(t, "fl_", fp[:3])

	// Deterministic.
	assert.Equal(t, fp, Line("Travel ₹200"))

	// Outer whitespace is not significant; anything else is.
	assert.Equal(t, fp, Line("  Travel ₹200  "))
	assert.NotEqual(t, fp, Line("Travel  ₹200"))
	assert.NotEqual(t, fp, Line("travel ₹200"))
}
