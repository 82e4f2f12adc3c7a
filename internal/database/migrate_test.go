package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_OrderedAndReversible(t *testing.T) {
	seen := map[string]bool{}
	prev := ""
	for _, m := range Migrations {
		assert.NotEmpty(t, m.Name, m.Version)
		assert.NotNil(t, m.Up, m.Version)
		assert.NotNil(t, m.Down, m.Version)
		assert.False(t, seen[m.Version], "duplicate version %s", m.Version)
		assert.Greater(t, m.Version, prev)
		seen[m.Version] = true
		prev = m.Version
	}
}

func TestStatus_MarksApplied(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	steps := []Migration{
		{Version: "0002", Name: "second"},
		{Version: "0001", Name: "first"},
	}

	out := status(steps, map[string]schemaMigration{"0001": {Version: "0001", AppliedAt: at}})

	require.Len(t, out, 2)
	assert.Equal(t, "0001", out[0].Version)
	assert.True(t, out[0].Applied)
	require.NotNil(t, out[0].AppliedAt)
	assert.Equal(t, at, *out[0].AppliedAt)
	assert.Equal(t, "0002", out[1].Version)
	assert.False(t, out[1].Applied)
	assert.Nil(t, out[1].AppliedAt)
}

func TestSorted_DoesNotMutateInput(t *testing.T) {
	steps := []Migration{{Version: "0003"}, {Version: "0001"}, {Version: "0002"}}
	out := sorted(steps)
	assert.Equal(t, "0003", steps[0].Version)
	assert.Equal(t, []string{"0001", "0002", "0003"}, []string{out[0].Version, out[1].Version, out[2].Version})
}
