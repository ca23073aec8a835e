package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastTarget_PrefersGeneral(t *testing.T) {
	c := Community{
		ID:    1,
		Title: "gophers",
		Targets: []Target{
			{ID: 10, Name: "random"},
			{ID: 11, Name: "General"},
			{ID: 12, Name: "general"},
		},
	}

	target, ok := c.BroadcastTarget()
	require.True(t, ok)
	assert.Equal(t, int64(11), target.ID, "first general-named target wins, case-insensitively")
}

func TestBroadcastTarget_FallsBackToFirst(t *testing.T) {
	c := Community{
		ID:      1,
		Targets: []Target{{ID: 10, Name: "random"}, {ID: 11, Name: "dev"}},
	}

	target, ok := c.BroadcastTarget()
	require.True(t, ok)
	assert.Equal(t, int64(10), target.ID)
}

func TestBroadcastTarget_NoTargets(t *testing.T) {
	_, ok := Community{ID: 1}.BroadcastTarget()
	assert.False(t, ok)
}
