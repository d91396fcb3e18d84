package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UnsetUntilSelected(t *testing.T) {
	s := NewStore()

	loc, ok := s.Location(42)
	assert.False(t, ok)
	assert.Empty(t, loc)

	s.SetLocation(42, "Chilonzor")
	loc, ok = s.Location(42)
	require.True(t, ok)
	assert.Equal(t, "Chilonzor", loc)
}

func TestStore_LastWriteWins(t *testing.T) {
	s := NewStore()
	s.SetLocation(1, "Chilonzor")
	s.SetLocation(1, "Yunusobod")

	loc, _ := s.Location(1)
	assert.Equal(t, "Yunusobod", loc)
}

func TestStore_UsersAreIndependent(t *testing.T) {
	s := NewStore()
	s.SetLocation(1, "Chilonzor")

	_, ok := s.Location(2)
	assert.False(t, ok)
	loc, _ := s.Location(1)
	assert.Equal(t, "Chilonzor", loc)
}

func TestStore_ConcurrentUsersDoNotInterfere(t *testing.T) {
	s := NewStore()
	const users, writes = 8, 200
	districts := []string{"Chilonzor", "Sergeli", "Yunusobod"}

	var wg sync.WaitGroup
	for u := int64(0); u < users; u++ {
		for i := 0; i < writes; i++ {
			wg.Add(1)
			go func(u int64, i int) {
				defer wg.Done()
				s.SetLocation(u, districts[i%len(districts)])
				_, _ = s.Location(u + 1)
			}(u, i)
		}
	}
	wg.Wait()

	assert.Equal(t, users+1, s.Len())
	for u := int64(0); u < users; u++ {
		loc, ok := s.Location(u)
		require.True(t, ok)
		assert.Contains(t, districts, loc)
	}
	_, ok := s.Location(users)
	assert.False(t, ok)
}
