package color

import (
	"testing"

	fcolor "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	prev := fcolor.NoColor
	t.Cleanup(func() { fcolor.NoColor = prev })

	fcolor.NoColor = false
	assert.Contains(t, Status("Returned"), "\x1b[")
	assert.Contains(t, Status("Returned"), "Returned")
	assert.Equal(t, "Archived", Status("Archived"))
	assert.Equal(t, "Normal", Priority("Normal"))

	Disable()
	assert.Equal(t, "Returned", Status("Returned"))
	assert.Equal(t, "High", Priority("High"))
}
