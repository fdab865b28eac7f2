package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleInSet(t *testing.T) {
	t.Parallel()

	t.Run("adds a missing value at the end", func(t *testing.T) {
		got := ToggleInSet([]string{"academics", "family"}, "health")
		assert.Equal(t, []string{"academics", "family", "health"}, got)
	})

	t.Run("removes a present value keeping order", func(t *testing.T) {
		got := ToggleInSet([]string{"academics", "family", "health"}, "family")
		assert.Equal(t, []string{"academics", "health"}, got)
	})

	t.Run("toggling twice restores the set", func(t *testing.T) {
		orig := []string{"academics", "family", "health"}
		for _, v := range []string{"academics", "family", "health", "work"} {
			once := ToggleInSet(append([]string(nil), orig...), v)
			twice := ToggleInSet(once, v)
			assert.Equal(t, orig, twice, "toggling %q twice", v)
		}
	})

	t.Run("empty set", func(t *testing.T) {
		assert.Equal(t, []string{"health"}, ToggleInSet(nil, "health"))
	})
}

func TestMoodEntryValidate(t *testing.T) {
	t.Parallel()

	valid := MoodEntry{Mood: MoodHappy, Intensity: 5}
	assert.NoError(t, valid.Validate())

	edge := MoodEntry{Mood: MoodCalm, Intensity: 1}
	assert.NoError(t, edge.Validate())
	edge.Intensity = 10
	assert.NoError(t, edge.Validate())

	bad := MoodEntry{Mood: "giddy", Intensity: 5}
	assert.Error(t, bad.Validate())

	low := MoodEntry{Mood: MoodHappy, Intensity: 0}
	assert.Error(t, low.Validate())
}
