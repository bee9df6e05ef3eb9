package core

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoRecoversAndRunsCleanup(t *testing.T) {
	cleaned := make(chan struct{})
	exited := make(chan int, 1)

	SetCrashCleanup(func() { close(cleaned) })
	crashMu.Lock()
	crashExit = func(code int) { exited <- code }
	crashMu.Unlock()
	t.Cleanup(func() {
		SetCrashCleanup(nil)
		crashMu.Lock()
		crashExit = os.Exit
		crashMu.Unlock()
	})

	Go(func() { panic("boom") })

	select {
	case <-cleaned:
	case <-time.After(time.Second):
		t.Fatal("cleanup hook not called")
	}
	select {
	case code := <-exited:
		assert.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("exit not called")
	}
}

func TestGoRunsFunction(t *testing.T) {
	done := make(chan struct{})
	Go(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "goroutine did not run")
	}
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	HandleCrash(nil)
}
