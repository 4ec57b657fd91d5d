package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	closed    bool
	declared  []string
	published []amqp.Publishing
}

func (c *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	c.declared = append(c.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
	if c.closed {
		return amqp.ErrClosed
	}
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) IsClosed() bool { return c.closed }

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConnection struct {
	closed   bool
	channels []*fakeChannel
}

func (c *fakeConnection) Channel() (amqpChannel, error) {
	if c.closed {
		return nil, amqp.ErrClosed
	}
	ch := &fakeChannel{}
	c.channels = append(c.channels, ch)
	return ch, nil
}

func (c *fakeConnection) IsClosed() bool { return c.closed }

func (c *fakeConnection) Close() error {
	c.closed = true
	return nil
}

type fakeBroker struct {
	dials int
	conns []*fakeConnection
	err   error
}

func (b *fakeBroker) dial(string) (amqpConnection, error) {
	b.dials++
	if b.err != nil {
		return nil, b.err
	}
	conn := &fakeConnection{}
	b.conns = append(b.conns, conn)
	return conn, nil
}

func connectedPublisher(t *testing.T, broker *fakeBroker) *amqpPublisher {
	t.Helper()
	p := newAMQPPublisher("amqp://broker", "reservation.created", broker.dial, zap.NewNop())
	require.NoError(t, p.connect())
	return p
}

func TestAMQPPublisher_Publish(t *testing.T) {
	broker := &fakeBroker{}
	p := connectedPublisher(t, broker)

	ev := ReservationCreated{ReservationID: "r-1", UserID: "u-1", Tickets: []TicketPlaced{{Row: 2, Seat: 3}}}
	require.NoError(t, p.PublishReservationCreated(context.Background(), ev))

	ch := broker.conns[0].channels[0]
	assert.Equal(t, []string{"reservation.created"}, ch.declared)
	require.Len(t, ch.published, 1)

	msg := ch.published[0]
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "r-1", msg.MessageId)

	var got ReservationCreated
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, ev.Tickets, got.Tickets)
}

func TestAMQPPublisher_ReopensClosedChannel(t *testing.T) {
	broker := &fakeBroker{}
	p := connectedPublisher(t, broker)

	conn := broker.conns[0]
	conn.channels[0].closed = true

	require.NoError(t, p.PublishReservationCreated(context.Background(), ReservationCreated{ReservationID: "r-2"}))

	assert.Equal(t, 1, broker.dials, "live connection is reused")
	require.Len(t, conn.channels, 2)
	assert.Equal(t, []string{"reservation.created"}, conn.channels[1].declared)
	assert.Len(t, conn.channels[1].published, 1)
}

func TestAMQPPublisher_RedialsDroppedConnection(t *testing.T) {
	broker := &fakeBroker{}
	p := connectedPublisher(t, broker)

	broker.conns[0].closed = true

	require.NoError(t, p.PublishReservationCreated(context.Background(), ReservationCreated{ReservationID: "r-3"}))

	assert.Equal(t, 2, broker.dials)
	assert.Len(t, broker.conns[1].channels[0].published, 1)
}

func TestAMQPPublisher_BrokerDown(t *testing.T) {
	broker := &fakeBroker{}
	p := connectedPublisher(t, broker)

	broker.conns[0].closed = true
	broker.err = errors.New("connection refused")

	err := p.PublishReservationCreated(context.Background(), ReservationCreated{ReservationID: "r-4"})
	assert.ErrorContains(t, err, "amqp dial")
}
