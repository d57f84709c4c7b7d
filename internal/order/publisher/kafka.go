package publisher

import (
	"context"
	"strconv"

	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/broker"
)

type KafkaPublisher struct {
	producer *broker.KafkaProducer
}

func NewKafkaPublisher(producer *broker.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// Publish keys by order id so all events for one order land on the same partition.
// Ordering across events also depends on the caller publishing them one at a time.
func (p *KafkaPublisher) Publish(ctx context.Context, event *dto.OrderEvent) error {
	return p.producer.PublishJSON(ctx, strconv.FormatInt(event.Payload.ID, 10), event)
}
