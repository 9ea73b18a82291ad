package mq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange and queue names for settled-order announcements.
const (
	SettledExchange = "orders_topic"
	SettledQueue    = "settled.q"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(host string, port int, user, pass string) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, pass, host, port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// DeclareAll sets up the settled-order topology so consumers can bind
// before the first checkout of the day.
func (c *Client) DeclareAll() error {
	if c == nil || c.ch == nil {
		return fmt.Errorf("nil channel")
	}
	if err := c.ch.ExchangeDeclare(SettledExchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := c.ch.QueueDeclare(SettledQueue, true, false, false, false, nil); err != nil {
		return err
	}
	return c.ch.QueueBind(SettledQueue, "pos.settled.*", SettledExchange, false, nil)
}

func (c *Client) PublishPersistent(ctx context.Context, exchange, key string, body []byte) error {
	return c.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
}
