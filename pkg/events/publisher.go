// Package events publishes CV status changes to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/streadway/amqp"

	"github.com/artem13815/cvdesk/pkg/cv"
)

const DefaultExchange = "cv_updates"

// Publisher sends status events to a topic exchange, one routing key per owner.
type Publisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

// Dial connects to RabbitMQ and declares the exchange.
func Dial(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, exchange: exchange, ch: ch}, nil
}

var _ cv.StatusNotifier = (*Publisher)(nil)

func (p *Publisher) Notify(_ context.Context, ev cv.StatusEvent) error {
	body, err := Encode(ev)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Publish(
		p.exchange,
		RoutingKey(ev),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ch.Close()
	return p.conn.Close()
}

func RoutingKey(ev cv.StatusEvent) string {
	return fmt.Sprintf("cv.%s", ev.OwnerID)
}

func Encode(ev cv.StatusEvent) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return body, nil
}

// LogNotifier only logs events; used when no broker is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, ev cv.StatusEvent) error {
	log.Printf("cv %s -> %s %s", ev.CVID, ev.Status, ev.Reason)
	return nil
}
