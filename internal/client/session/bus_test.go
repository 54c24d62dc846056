package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBus_AnnounceNotifiesAllListenersInOrder(t *testing.T) {
	b := NewBus()
	var got []int
	b.Subscribe(func() { got = append(got, 1) })
	b.Subscribe(func() { got = append(got, 2) })

	b.AnnounceLogout()

	require.Equal(t, []int{1, 2}, got)
}

func TestBus_AnnounceWithNoListeners(t *testing.T) {
	b := NewBus()
	require.NotPanics(t, func() { b.AnnounceLogout() })
}

func TestBus_ListenerMaySubscribeDuringAnnounce(t *testing.T) {
	b := NewBus()
	fired := false
	b.Subscribe(func() {
		b.Subscribe(func() { fired = true })
	})

	b.AnnounceLogout()
	require.False(t, fired, "new listener sees only later announcements")

	b.AnnounceLogout()
	require.True(t, fired)
}

func TestBus_ConcurrentAnnouncements(t *testing.T) {
	b := NewBus()
	var mu sync.Mutex
	count := 0
	b.Subscribe(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.AnnounceLogout()
		}()
	}
	wg.Wait()

	require.Equal(t, 10, count)
}
