package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinocave/vinocave-backend/internal/app/model"
)

func waitForSessions(t *testing.T, hub *Hub, userID uint, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[userID]) == want
	}, time.Second, 5*time.Millisecond)
}

func recvEvent(t *testing.T, client *Client) []byte {
	t.Helper()
	select {
	case msg := <-client.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no feed event received")
		return nil
	}
}

func TestHub_BroadcastActivity(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 16)}
	hub.Register(client)
	waitForSessions(t, hub, 1, 1)

	hub.BroadcastActivity(&model.CommunityActivity{
		ID:           7,
		UserID:       1,
		ActivityType: model.ActivityAdded,
		WineName:     "Cornas",
	})

	msg := string(recvEvent(t, client))
	assert.Contains(t, msg, `"type":"activity"`)
	assert.Contains(t, msg, "Cornas")
}

func TestHub_MultiDeviceFanout(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	phone := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 16)}
	laptop := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 16)}
	hub.Register(phone)
	hub.Register(laptop)
	waitForSessions(t, hub, 1, 2)

	hub.BroadcastActivity(&model.CommunityActivity{ID: 1, UserID: 2, WineName: "Fleurie"})

	assert.Contains(t, string(recvEvent(t, phone)), "Fleurie")
	assert.Contains(t, string(recvEvent(t, laptop)), "Fleurie")
}

func TestHub_DroppedClientUnregisteredTwice(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// An unbuffered session with no reader stalls on the first event.
	stalled := &Client{Hub: hub, UserID: 1, Send: make(chan []byte)}
	healthy := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 16)}
	hub.Register(stalled)
	hub.Register(healthy)
	waitForSessions(t, hub, 1, 2)

	hub.BroadcastActivity(&model.CommunityActivity{ID: 1, UserID: 2, WineName: "Fleurie"})
	recvEvent(t, healthy)
	waitForSessions(t, hub, 1, 1)

	// The read pump tears the same session down again on exit.
	hub.Unregister(stalled)

	// The hub must survive the duplicate removal and keep serving the
	// healthy session.
	hub.BroadcastActivity(&model.CommunityActivity{ID: 2, UserID: 2, WineName: "Morgon"})
	assert.Contains(t, string(recvEvent(t, healthy)), "Morgon")

	_, open := <-stalled.Send
	assert.False(t, open, "dropped client's send channel should be closed")
}

func TestHub_UnregisterLastSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 16)}
	hub.Register(client)
	waitForSessions(t, hub, 1, 1)

	hub.Unregister(client)
	waitForSessions(t, hub, 1, 0)

	_, open := <-client.Send
	assert.False(t, open)
}
