package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfiguredWith(t *testing.T) {
	defaults := []string{"Design", "Testing"}

	// observed stages never leak into the saved pipeline
	assert.Equal(t, []string{"Design", "Testing", "Onboarding"}, configuredWith(defaults, "Onboarding"))
	assert.Equal(t, []string{"Design", "Testing"}, configuredWith(defaults, "Testing"))
	assert.Equal(t, []string{"Design", "Testing"}, defaults, "input is not modified")
}

func TestConfiguredWithout(t *testing.T) {
	defaults := []string{"Design", "Testing", "Completed"}

	assert.Equal(t, []string{"Design", "Completed"}, configuredWithout(defaults, "Testing"))
	assert.Equal(t, []string{"Design", "Completed"}, configuredWithout(defaults, "  Testing "))
	assert.Equal(t, defaults, configuredWithout(defaults, "Pilot"))
	assert.Len(t, defaults, 3, "input is not modified")
}
