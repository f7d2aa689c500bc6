package timeout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_EnsureReusesMonitor(t *testing.T) {
	r := NewRegistry(&fakeRenewer{}, "", Config{Timeout: time.Hour})
	defer r.Stop()

	m := r.Ensure("")
	require.True(t, ValidID(m.ID()))

	again := r.Ensure(m.ID())
	assert.Same(t, m, again)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_EnsureRejectsForeignIDs(t *testing.T) {
	r := NewRegistry(&fakeRenewer{}, "", Config{Timeout: time.Hour})
	defer r.Stop()

	m := r.Ensure("not-a-ulid")
	assert.NotEqual(t, "not-a-ulid", m.ID())
	assert.True(t, ValidID(m.ID()))
}

func TestRegistry_EnsureReplacesEndedMonitor(t *testing.T) {
	r := NewRegistry(&fakeRenewer{}, "", Config{Timeout: time.Hour})
	defer r.Stop()

	m := r.Ensure("")
	m.End()

	fresh := r.Ensure(m.ID())
	assert.NotSame(t, m, fresh)
	assert.Equal(t, m.ID(), fresh.ID())
	assert.Equal(t, PhaseActive, fresh.Status().Phase)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry(&fakeRenewer{}, "", Config{Timeout: time.Hour})
	defer r.Stop()

	m := r.Ensure("")
	r.Remove(m.ID())

	_, ok := r.Get(m.ID())
	assert.False(t, ok)
	assert.Equal(t, PhaseEnded, m.Status().Phase)
}

func TestRegistry_Sweep(t *testing.T) {
	r := NewRegistry(&fakeRenewer{}, "", Config{Timeout: time.Hour, TTL: time.Minute})
	defer r.Stop()

	stale := r.Ensure("")
	fresh := r.Ensure("")
	ended := r.Ensure("")
	ended.End()

	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-2 * time.Minute)
	stale.mu.Unlock()

	removed := r.Sweep(time.Now())

	assert.Equal(t, 2, removed)
	_, ok := r.Get(fresh.ID())
	assert.True(t, ok)
	_, ok = r.Get(stale.ID())
	assert.False(t, ok)
}

func TestRegistry_PollingDoesNotCountAsActivity(t *testing.T) {
	r := NewRegistry(&fakeRenewer{}, "", Config{Timeout: 20 * time.Millisecond, TTL: time.Minute})
	defer r.Stop()

	m := r.Ensure("")
	for i := 0; i < 5; i++ {
		m.Touch()
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return m.Status().Prompt }, time.Second, 5*time.Millisecond)
}

func TestRegistry_ScheduledSweep(t *testing.T) {
	r := NewRegistry(&fakeRenewer{}, "", Config{Timeout: time.Hour, TTL: time.Minute, SweepSpec: "@every 1s"})
	require.NoError(t, r.Start())
	defer r.Stop()

	m := r.Ensure("")
	m.End()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestRegistry_BadSweepSpec(t *testing.T) {
	r := NewRegistry(&fakeRenewer{}, "", Config{SweepSpec: "whenever"})
	assert.Error(t, r.Start())
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.TTL)
	assert.Equal(t, "@every 30m0s", cfg.SweepSpec)
}
