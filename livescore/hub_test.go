package livescore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Dosada05/sports-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func TestRoomForSport(t *testing.T) {
	assert.Equal(t, RoomAll, RoomForSport(""))
	assert.Equal(t, "sport:football", RoomForSport(" Football "))
}

func TestPublishMatchFansOut(t *testing.T) {
	hub := newTestHub(t)

	all := NewClient(hub, nil, RoomAll)
	football := NewClient(hub, nil, RoomForSport("football"))
	cricket := NewClient(hub, nil, RoomForSport("cricket"))
	hub.Register(all)
	hub.Register(football)
	hub.Register(cricket)

	require.Eventually(t, func() bool {
		return hub.ClientCount(RoomAll) == 1 &&
			hub.ClientCount("sport:football") == 1 &&
			hub.ClientCount("sport:cricket") == 1
	}, time.Second, 10*time.Millisecond)

	hub.PublishMatch(EventMatchUpdated, &models.Match{ID: 9, Sport: "Football", ScoreA: 2, ScoreB: 1})

	msg := receive(t, all)
	assert.Equal(t, EventMatchUpdated, msg.Type)
	assert.Equal(t, RoomAll, msg.Room)

	msg = receive(t, football)
	assert.Equal(t, "sport:football", msg.Room)

	select {
	case <-cricket.send:
		t.Fatal("cricket room must not receive football events")
	default:
	}
}

func TestRunClosesClientsOnShutdown(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := NewClient(hub, nil, RoomAll)
	hub.Register(c)
	cancel()
	<-done

	_, ok := <-c.send
	assert.False(t, ok, "send channel is closed on shutdown")
}

func TestRegisterAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hub.Run(ctx)

	c := NewClient(hub, nil, RoomAll)
	returned := make(chan struct{})
	go func() {
		hub.Register(c)
		hub.Unregister(c)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister blocked on a stopped hub")
	}
	_, ok := <-c.send
	assert.False(t, ok, "a client registered late is closed right away")
	assert.Zero(t, hub.ClientCount(RoomAll))
}

func TestPublishOnNilHub(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.PublishMatch(EventMatchCreated, &models.Match{}) })
}
