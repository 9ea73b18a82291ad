// Package notify publishes settled orders to RabbitMQ for downstream
// consumers (kitchen display, receipts archive).
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"burger-pos/internal/common/mq"
	"burger-pos/internal/domain"
)

type Publisher struct {
	client *mq.Client
}

func NewPublisher(client *mq.Client) *Publisher { return &Publisher{client: client} }

func (p *Publisher) OrderSettled(ctx context.Context, msg domain.OrderSettledMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal settled order: %w", err)
	}
	key := fmt.Sprintf("pos.settled.%d", msg.OrderNumber)
	return p.client.PublishPersistent(ctx, mq.SettledExchange, key, body)
}
