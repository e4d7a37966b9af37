package auth

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

// fakeState is a toggleable authentication state.
type fakeState struct {
	authed bool
}

func (f *fakeState) IsAuthenticated() bool { return f.authed }

func TestDispatcher_GatedRunsWhenAuthenticated(t *testing.T) {
	// Arrange
	state := &fakeState{authed: true}
	d := NewDispatcher(state, zap.NewNop())

	calls := 0
	action := d.Gated("add item", func() error {
		calls++
		return nil
	})

	// Act
	ran, err := action()

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("action should run when authenticated")
	}
	if calls != 1 {
		t.Errorf("action called %d times, want 1", calls)
	}
	if _, pending := d.Pending(); pending {
		t.Error("no action should be held after a direct run")
	}
}

func TestDispatcher_GatedHoldsWhenUnauthenticated(t *testing.T) {
	// Arrange
	state := &fakeState{}
	d := NewDispatcher(state, zap.NewNop())

	var prompted []string
	d.SetPrompt(func(description string) {
		prompted = append(prompted, description)
	})

	calls := 0
	action := d.Gated("delete item", func() error {
		calls++
		return nil
	})

	// Act
	ran, err := action()

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran {
		t.Error("action must not run without authentication")
	}
	if calls != 0 {
		t.Errorf("action called %d times, want 0", calls)
	}
	if desc, pending := d.Pending(); !pending || desc != "delete item" {
		t.Errorf("Pending() = %q, %v; want %q, true", desc, pending, "delete item")
	}
	if len(prompted) != 1 || prompted[0] != "delete item" {
		t.Errorf("prompt calls = %v, want one call with the description", prompted)
	}
}

func TestDispatcher_LastInvocationWins(t *testing.T) {
	// Arrange
	state := &fakeState{}
	d := NewDispatcher(state, zap.NewNop())

	var got []string
	record := func(tag string) func() error {
		return func() error {
			got = append(got, tag)
			return nil
		}
	}

	first := d.Gated("add item", record("first"))
	second := d.Gated("update item", record("second"))

	// Act: both held, the second replaces the first.
	_, _ = first()
	_, _ = second()

	state.authed = true
	ran, err := d.Resume()

	// Assert
	if err != nil {
		t.Fatalf("Resume() unexpected error: %v", err)
	}
	if !ran {
		t.Fatal("Resume() should run the held action")
	}
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("ran actions = %v, want only the most recent", got)
	}
}

func TestDispatcher_ResumeRunsOnceWithOriginalArgs(t *testing.T) {
	// Arrange
	state := &fakeState{}
	d := NewDispatcher(state, zap.NewNop())

	var received []string
	action := Gated1(d, "update item", func(id string) error {
		received = append(received, id)
		return nil
	})

	// Act
	_, _ = action("item-42")
	state.authed = true

	ran1, err1 := d.Resume()
	ran2, err2 := d.Resume()

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("Resume() errors: %v, %v", err1, err2)
	}
	if !ran1 {
		t.Error("first Resume() should run the held action")
	}
	if ran2 {
		t.Error("second Resume() should find nothing to run")
	}
	if len(received) != 1 || received[0] != "item-42" {
		t.Errorf("action received %v, want the original argument once", received)
	}
}

func TestDispatcher_ResumePropagatesError(t *testing.T) {
	// Arrange
	state := &fakeState{}
	d := NewDispatcher(state, zap.NewNop())
	wantErr := errors.New("boom")

	action := d.Gated("add item", func() error { return wantErr })

	// Act
	_, _ = action()
	state.authed = true
	ran, err := d.Resume()

	// Assert
	if !ran {
		t.Error("Resume() should have attempted the action")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("Resume() error = %v, want %v", err, wantErr)
	}
	if _, pending := d.Pending(); pending {
		t.Error("a failed action must not stay held")
	}
}

func TestDispatcher_DismissDiscards(t *testing.T) {
	// Arrange
	state := &fakeState{}
	d := NewDispatcher(state, zap.NewNop())

	calls := 0
	action := d.Gated("delete item", func() error {
		calls++
		return nil
	})

	// Act
	_, _ = action()
	dismissed := d.Dismiss()
	state.authed = true
	ran, _ := d.Resume()

	// Assert
	if !dismissed {
		t.Error("Dismiss() should report a discarded action")
	}
	if ran {
		t.Error("Resume() after Dismiss() must not run anything")
	}
	if calls != 0 {
		t.Errorf("action called %d times, want 0", calls)
	}
}
