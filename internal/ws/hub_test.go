package ws

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestHub_SendToReachesOnlyRecipient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	alice, bob := uuid.New(), uuid.New()
	ca := &Client{hub: h, userID: alice, send: make(chan []byte, 1)}
	cb := &Client{hub: h, userID: bob, send: make(chan []byte, 1)}
	h.Register(ca)
	h.Register(cb)
	waitFor(t, func() bool { return h.ClientCount() == 2 })

	if !h.SendTo(alice, []byte("hello")) {
		t.Fatalf("expected message to be queued")
	}

	select {
	case msg := <-ca.send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected payload %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected alice to receive the message")
	}

	select {
	case msg := <-cb.send:
		t.Fatalf("bob should not receive %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	id := uuid.New()
	c := &Client{hub: h, userID: id, send: make(chan []byte, 1)}
	h.Register(c)
	waitFor(t, func() bool { return h.Connected(id) })

	h.Unregister(c)
	waitFor(t, func() bool { return !h.Connected(id) })

	if _, ok := <-c.send; ok {
		t.Fatalf("expected send channel to be closed")
	}
}

func TestHub_NilIsSafe(t *testing.T) {
	var h *Hub
	if h.SendTo(uuid.New(), nil) {
		t.Fatalf("expected nil hub to drop")
	}
	if h.ClientCount() != 0 {
		t.Fatalf("expected zero clients")
	}
}

func TestHub_UnregisterAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			h.Unregister(&Client{hub: h, userID: uuid.New(), send: make(chan []byte)})
		}
		h.Register(&Client{hub: h, userID: uuid.New(), send: make(chan []byte)})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected Register/Unregister to return after the hub stopped")
	}
}
