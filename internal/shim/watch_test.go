package shim

import (
	"context"
	"testing"
	"time"
)

func TestRegistry_Watch(t *testing.T) {
	reg, _ := newTestRegistry(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- reg.Watch(ctx, func() { changes <- struct{}{} })
	}()

	// Keep creating until the watcher is attached and reports a change.
	deadline := time.After(3 * time.Second)
	created := 0
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-changes:
			break wait
		case <-tick.C:
			name := "tool" + string(rune('a'+created%26))
			if exists, _ := reg.exists(name); !exists {
				if err := reg.Create(name); err != nil {
					t.Fatalf("Create() error = %v", err)
				}
			}
			created++
		case <-deadline:
			t.Fatal("no change reported by Watch()")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
}
