package ws

import (
	"sync"
	"testing"
)

func TestBroadcastSkipsSender(t *testing.T) {
	room := NewRoom(42)
	sender := &Client{UserID: 1, Send: make(chan []byte, 1)}
	receiver := &Client{UserID: 2, Send: make(chan []byte, 1)}
	room.Join(sender)
	room.Join(receiver)

	room.Broadcast(sender, map[string]string{"type": "message", "content": "hi"})

	select {
	case <-sender.Send:
		t.Error("sender received its own broadcast")
	default:
	}
	select {
	case <-receiver.Send:
	default:
		t.Error("receiver got nothing")
	}
}

func TestBroadcastToClosedClientDoesNotPanic(t *testing.T) {
	room := NewRoom(42)
	sender := &Client{UserID: 1, Send: make(chan []byte, 1)}
	gone := &Client{UserID: 2, Send: make(chan []byte, 1)}
	room.Join(sender)
	room.Join(gone)

	gone.Close()
	room.Broadcast(sender, map[string]string{"type": "message", "content": "hi"})
}

func TestConcurrentCloseAndBroadcast(t *testing.T) {
	room := NewRoom(42)
	sender := &Client{UserID: 1, Send: make(chan []byte, 1)}
	room.Join(sender)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		c := &Client{UserID: uint(i + 2), Send: make(chan []byte, 1)}
		room.Join(c)
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Close()
		}()
		go func() {
			defer wg.Done()
			room.Broadcast(sender, map[string]string{"type": "message"})
		}()
	}
	wg.Wait()
}

func TestHubRoomLifecycle(t *testing.T) {
	hub := NewHub()
	room := hub.GetOrCreateRoom(42)
	if hub.GetOrCreateRoom(42) != room {
		t.Error("same session produced a second room")
	}
	c := &Client{UserID: 1, Send: make(chan []byte, 1)}
	room.Join(c)
	if room.Empty() {
		t.Error("room with one client reported empty")
	}
	room.Leave(c)
	if !room.Empty() {
		t.Error("room not empty after leave")
	}
	hub.RemoveRoom(42)
	if hub.GetOrCreateRoom(42) == room {
		t.Error("removed room was returned again")
	}
}
