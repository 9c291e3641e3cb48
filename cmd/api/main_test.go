package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matatumonitor/internal/appconf"
	"matatumonitor/internal/session"
)

func TestNewSessionWithSampleData(t *testing.T) {
	sess, err := newSession(context.Background(), appconf.Config{SeedSampleData: true}, session.Options{})
	require.NoError(t, err)

	assert.Len(t, sess.Reports(), 3)
	assert.Equal(t, 4, sess.Routes().Len())
}

func TestNewSessionWithoutSeed(t *testing.T) {
	sess, err := newSession(context.Background(), appconf.Config{}, session.Options{})
	require.NoError(t, err)

	assert.Empty(t, sess.Reports())
	assert.Equal(t, 4, sess.Routes().Len(), "sample routes are used without a GTFS source")
}

func TestNewSessionMissingGTFSSource(t *testing.T) {
	_, err := newSession(context.Background(), appconf.Config{
		GTFSSource:      filepath.Join(t.TempDir(), "missing.zip"),
		GTFSDefaultFare: 50,
	}, session.Options{})

	assert.ErrorContains(t, err, "loading routes from")
}

func TestRunRejectsBadFlags(t *testing.T) {
	err := run(context.Background(), []string{"-port", "not-a-number"}, io.Discard)
	assert.Error(t, err)
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"-port", "0", "-env", "test"}, io.Discard)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
