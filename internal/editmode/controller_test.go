package editmode

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLossForcesEditModeOff(t *testing.T) {
	c := NewController()

	c.SetSession(true)
	c.SetEditMode(true)
	assert.Equal(t, State{IsAdmin: true, IsEditMode: true}, c.State())

	c.SetSession(false)
	assert.Equal(t, State{IsAdmin: false, IsEditMode: false}, c.State())
}

func TestEditModeRequiresSession(t *testing.T) {
	c := NewController()

	c.SetEditMode(true)
	assert.Equal(t, State{}, c.State())

	c.SetSession(true)
	c.SetEditMode(true)
	c.SetEditMode(false)
	assert.Equal(t, State{IsAdmin: true, IsEditMode: false}, c.State())
}

func TestEditModeSurvivesSessionRefresh(t *testing.T) {
	c := NewController()

	c.SetSession(true)
	c.SetEditMode(true)
	c.SetSession(true)
	assert.Equal(t, State{IsAdmin: true, IsEditMode: true}, c.State())
}

// Readers must never observe edit mode on without an admin session, no matter
// how transitions interleave.
func TestNoTornReads(t *testing.T) {
	c := NewController()
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			c.SetSession(true)
			c.SetEditMode(true)
			c.SetSession(false)
		}
		close(stop)
	}()

	for {
		s := c.State()
		if s.IsEditMode {
			assert.True(t, s.IsAdmin)
		}
		select {
		case <-stop:
			wg.Wait()
			return
		default:
		}
	}
}
