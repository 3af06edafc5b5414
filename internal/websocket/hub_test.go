package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/tmalloy/bindery/internal/models"
)

func TestHub(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Mock client
	client := &Client{
		hub:  hub,
		send: make(chan []byte, 1),
	}

	// Test registration
	hub.register <- client
	if len(hub.clients) != 1 {
		t.Fatalf("Expected 1 client after registration, got %d", len(hub.clients))
	}

	// Scan progress goes out as JSON
	hub.BroadcastJSON(models.ProgressUpdate{
		JobID:    "library-scan",
		Message:  "Scanning book.epub",
		Progress: 50,
	})

	select {
	case received := <-client.send:
		var update models.ProgressUpdate
		if err := json.Unmarshal(received, &update); err != nil {
			t.Fatalf("Broadcast payload is not valid JSON: %v", err)
		}
		if update.JobID != "library-scan" || update.Progress != 50 {
			t.Errorf("Client received wrong update: %+v", update)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Client did not receive broadcast message in time")
	}

	// Test unregistration
	hub.unregister <- client
	// Allow the hub to process the unregister message
	time.Sleep(10 * time.Millisecond)
	if len(hub.clients) != 0 {
		t.Fatalf("Expected 0 clients after unregistration, got %d", len(hub.clients))
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// A client whose send buffer is already full.
	client := &Client{
		hub:  hub,
		send: make(chan []byte),
	}
	hub.register <- client

	hub.broadcast <- []byte("first")
	time.Sleep(10 * time.Millisecond)

	if len(hub.clients) != 0 {
		t.Fatalf("Expected slow client to be dropped, %d client(s) remain", len(hub.clients))
	}
}
