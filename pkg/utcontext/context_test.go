package utcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	c := New()
	done := make(chan int, 1)

	go func() {
		done <- c.Save()
	}()

	// Give the goroutine a chance to park in Save before restoring.
	time.Sleep(10 * time.Millisecond)
	c.Restore(7)

	select {
	case mark := <-done:
		require.Equal(t, 7, mark)
	case <-time.After(time.Second):
		t.Fatal("Save never returned after Restore")
	}
}

func TestInstallAltStackIsNoop(t *testing.T) {
	base, size := InstallAltStack(make([]byte, 4096), 4096)
	require.Nil(t, base)
	require.Zero(t, size)
}
