package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSMTP = errors.New("smtp: connection refused")

func TestCircuitBreaker_AbreTrasFallasConsecutivas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errSMTP })
		require.ErrorIs(t, err, errSMTP)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Open state fast-fails without invoking fn.
	llamado := false
	err := cb.Execute(func() error { llamado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, llamado)
}

func TestCircuitBreaker_RecuperacionPorHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errSMTP }))
	assert.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_FallaEnHalfOpenReabre(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errSMTP }))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(func() error { return errSMTP }))
	assert.Equal(t, CBOpen, cb.State())
}
