// Package event publishes domain events to RabbitMQ.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type TicketPlaced struct {
	TicketID      string `json:"ticket_id"`
	ShowSessionID string `json:"show_session_id"`
	Row           int    `json:"row"`
	Seat          int    `json:"seat"`
}

type ReservationCreated struct {
	ReservationID string         `json:"reservation_id"`
	UserID        string         `json:"user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	Tickets       []TicketPlaced `json:"tickets"`
}

type Publisher interface {
	PublishReservationCreated(ctx context.Context, event ReservationCreated) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishReservationCreated(context.Context, ReservationCreated) error { return nil }

func (NopPublisher) Close() error { return nil }

// amqpConnection and amqpChannel are the parts of amqp091 the publisher uses.
type amqpConnection interface {
	Channel() (amqpChannel, error)
	IsClosed() bool
	Close() error
}

type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type dialedConnection struct {
	*amqp.Connection
}

func (c dialedConnection) Channel() (amqpChannel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialAMQP(url string) (amqpConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return dialedConnection{conn}, nil
}

type amqpPublisher struct {
	url   string
	queue string
	dial  func(url string) (amqpConnection, error)
	log   *zap.Logger

	mu   sync.Mutex
	conn amqpConnection
	ch   amqpChannel
}

// NewAMQPPublisher dials the broker and declares the durable queue. A dropped
// connection is re-dialed and a closed channel reopened on the next publish.
func NewAMQPPublisher(url, queue string, log *zap.Logger) (Publisher, error) {
	p := newAMQPPublisher(url, queue, dialAMQP, log)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

func newAMQPPublisher(url, queue string, dial func(string) (amqpConnection, error), log *zap.Logger) *amqpPublisher {
	return &amqpPublisher{
		url:   url,
		queue: queue,
		dial:  dial,
		log:   log.With(zap.String("publisher", "amqp"), zap.String("queue", queue)),
	}
}

func (p *amqpPublisher) connect() error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	p.conn = conn
	if err := p.openChannel(); err != nil {
		_ = conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *amqpPublisher) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("amqp queue declare %s: %w", p.queue, err)
	}

	p.ch = ch
	return nil
}

// ready re-dials a dropped connection, or reopens a channel closed by a
// channel-level exception on a live connection.
func (p *amqpPublisher) ready() error {
	if p.conn == nil || p.conn.IsClosed() {
		p.log.Info("Reconnecting to broker")
		return p.connect()
	}
	if p.ch == nil || p.ch.IsClosed() {
		p.log.Info("Reopening broker channel")
		return p.openChannel()
	}
	return nil
}

func (p *amqpPublisher) PublishReservationCreated(ctx context.Context, event ReservationCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal reservation event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ready(); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.ReservationID,
		Type:         "reservation.created",
		Body:         body,
	}

	// default exchange, routing key = queue name
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}

	p.log.Debug("Reservation event published", zap.String("reservation_id", event.ReservationID))
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
