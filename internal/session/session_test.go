package session_test

import (
	"sync"
	"testing"

	"github.com/Houeta/devpin/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	t.Run("empty until first commit", func(t *testing.T) {
		store := session.NewMemory()

		username, ok := store.Current()

		assert.False(t, ok)
		assert.Empty(t, username)
	})

	t.Run("commit then read", func(t *testing.T) {
		store := session.NewMemory()

		store.Commit("octocat")
		username, ok := store.Current()

		assert.True(t, ok)
		assert.Equal(t, "octocat", username)
	})

	t.Run("later commit wins", func(t *testing.T) {
		store := session.NewMemory()

		store.Commit("first")
		store.Commit("second")
		username, ok := store.Current()

		assert.True(t, ok)
		assert.Equal(t, "second", username)
	})

	t.Run("concurrent access", func(t *testing.T) {
		store := session.NewMemory()
		var wg sync.WaitGroup

		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				store.Commit("octocat")
			}()
			go func() {
				defer wg.Done()
				_, _ = store.Current()
			}()
		}
		wg.Wait()

		username, ok := store.Current()
		assert.True(t, ok)
		assert.Equal(t, "octocat", username)
	})
}
