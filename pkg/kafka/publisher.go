package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/campusboard/backend/pkg/pubsub"
)

type publisher struct {
	producer sarama.SyncProducer
}

// NewPublisher connects a synchronous producer. Messages with the same key
// land in the same partition, which keeps the events of one user ordered.
func NewPublisher(clientID string, brokerAddrs []string) (*publisher, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 100 * time.Millisecond

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to kafka %v: %w", brokerAddrs, err)
	}

	return &publisher{producer: producer}, nil
}

func (p *publisher) Stop(context.Context) error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.ByteEncoder(pack.Key),
		Value:     sarama.ByteEncoder(pack.Msg),
		Timestamp: time.Now(),
	}

	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("cannot send message to %s: %w", topic, err)
	}

	return nil
}
