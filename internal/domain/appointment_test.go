package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitVariants(t *testing.T) {
	t.Parallel()

	t.Run("in-person carries no platform", func(t *testing.T) {
		t.Parallel()
		visit := InPersonVisit()
		assert.Equal(t, VisitInPerson, visit.Kind())
		_, ok := visit.Platform()
		assert.False(t, ok)
	})

	t.Run("video requires a known platform", func(t *testing.T) {
		t.Parallel()
		visit, err := VideoVisit(PlatformGoogleMeet)
		require.NoError(t, err)
		assert.Equal(t, VisitVideo, visit.Kind())

		platform, ok := visit.Platform()
		require.True(t, ok)
		assert.Equal(t, PlatformGoogleMeet, platform)
	})

	t.Run("empty platform is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := VideoVisit("")
		assert.ErrorIs(t, err, ErrPlatformRequired)
	})

	t.Run("unknown platform is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := VideoVisit("skype")
		assert.Error(t, err)
	})
}
