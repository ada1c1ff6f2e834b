package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func subscribe(hub *Hub, topic string) *Client {
	c := &Client{hub: hub, send: make(chan []byte, 4), subject: topic, topic: topic, logger: zerolog.Nop()}
	hub.register <- c
	return c
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHubRoutesByTopic(t *testing.T) {
	hub := startHub(t)
	admin := subscribe(hub, TopicAdmin)
	alice := subscribe(hub, StudentTopic("s1"))
	bob := subscribe(hub, StudentTopic("s2"))

	hub.Publish(Event{Type: "student.assigned", Topics: []string{TopicAdmin, StudentTopic("s1")}, Data: map[string]string{"roomId": "101"}})

	assert.Equal(t, "student.assigned", receive(t, admin).Type)
	assert.Equal(t, "student.assigned", receive(t, alice).Type)
	select {
	case <-bob.send:
		t.Fatal("event leaked to another student")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDefaultsToAdminTopic(t *testing.T) {
	hub := startHub(t)
	admin := subscribe(hub, TopicAdmin)

	hub.Publish(Event{Type: "notice.posted"})
	ev := receive(t, admin)
	assert.Equal(t, "notice.posted", ev.Type)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestHubUnregister(t *testing.T) {
	hub := startHub(t)
	c := subscribe(hub, TopicAdmin)
	hub.unregister <- c

	_, open := <-c.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.GetClientsCount(TopicAdmin))
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	c := subscribe(hub, StudentTopic("s1"))

	cancel()
	<-stopped
	_, open := <-c.send
	assert.False(t, open)

	late := &Client{hub: hub, send: make(chan []byte, 1), topic: TopicAdmin}
	assert.False(t, hub.add(late))
	hub.remove(c) // must not block after Run returned
}
