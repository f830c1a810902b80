package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_SharedEntries(t *testing.T) {
	root := NewMockLogger()
	child := root.WithField(FieldUser, "bob").WithError(errors.New("bad row"))

	root.Info("starting")
	child.Warn("dropped row", F(FieldReason, "date"))

	entries := root.Entries()
	require.Len(t, entries, 2)
	assert.True(t, root.HasEntry("INFO", "starting"))

	warn := root.EntriesByLevel("WARN")
	require.Len(t, warn, 1)
	assert.EqualError(t, warn[0].Error, "bad row")

	user, ok := warn[0].FieldValue(FieldUser)
	require.True(t, ok)
	assert.Equal(t, "bob", user)

	reason, ok := warn[0].FieldValue(FieldReason)
	require.True(t, ok)
	assert.Equal(t, "date", reason)
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var m MockLogger
	m.Debug("hello")
	m.Fatal("not exiting")

	assert.Len(t, m.Entries(), 2)
	assert.True(t, m.HasEntry("FATAL", "not exiting"))
}

func TestMockLogger_Concurrent(t *testing.T) {
	m := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.WithField(FieldCount, i).Info("tick")
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.EntriesByLevel("INFO"), 20)
}
