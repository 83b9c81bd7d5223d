package usync

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpinMutexMutualExclusion(t *testing.T) {
	m := NewSpinMutex()
	require.True(t, m.TryLock())
	require.False(t, m.TryLock())
	m.Unlock()
	require.True(t, m.TryLock())
	m.Unlock()
}

func TestSpinMutexLockWithoutKernel(t *testing.T) {
	// With no kernel.Get() singleton installed, Lock must still make
	// progress by spinning on the CAS alone once the lock is free.
	m := NewSpinMutex()
	m.Lock()
	m.Unlock()
	m.Lock()
	m.Unlock()
}
