package broadcast

import (
	"errors"
	"testing"

	"github.com/hairizuan-noorazman/suitegen/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	events []Event
	err    error
}

func (c *stubClient) Send(event Event) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, event)
	return nil
}

func TestHubNotifyDeliversToAllClients(t *testing.T) {
	hub := NewHub(logger.NewTestLogger())

	a := &stubClient{}
	b := &stubClient{}
	hub.Subscribe(a)
	hub.Subscribe(b)
	assert.Equal(t, 2, hub.Count())

	hub.Notify(Event{Kind: KindStatus, Message: "generating suite"})

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, KindStatus, a.events[0].Kind)
	assert.Equal(t, "generating suite", a.events[0].Message)
}

func TestHubDropsClientOnSendError(t *testing.T) {
	hub := NewHub(logger.NewTestLogger())

	healthy := &stubClient{}
	broken := &stubClient{err: errors.New("connection reset")}
	hub.Subscribe(healthy)
	hub.Subscribe(broken)

	hub.Notify(Event{Kind: KindOutput, Message: "line 1"})
	assert.Equal(t, 1, hub.Count())

	hub.Notify(Event{Kind: KindOutput, Message: "line 2"})
	assert.Len(t, healthy.events, 2)
	assert.Empty(t, broken.events)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub(logger.NewTestLogger())

	c := &stubClient{}
	hub.Subscribe(c)
	hub.Unsubscribe(c)
	assert.Equal(t, 0, hub.Count())

	// Double unsubscribe is a no-op.
	hub.Unsubscribe(c)

	hub.Notify(Event{Kind: KindSuccess, Message: "done"})
	assert.Empty(t, c.events)
}

func TestHubNotifyWithNoClients(t *testing.T) {
	hub := NewHub(logger.NewTestLogger())
	hub.Notify(Event{Kind: KindError, Message: "no one is listening"})
	assert.Equal(t, 0, hub.Count())
}
