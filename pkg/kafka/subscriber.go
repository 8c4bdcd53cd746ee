package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Shopify/sarama"
	"github.com/campusboard/backend/pkg/pubsub"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/cenkalti/backoff/v5"
)

type subscriber struct {
	groupID     string
	brokerAddrs []string
	topics      []string
	client      sarama.ConsumerGroup
	handler     pubsub.SubscribeHandler
}

func NewSubscriber(
	groupID string,
	brokerAddrs []string,
	topics []string,
	handler pubsub.SubscribeHandler,
) (*subscriber, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Offsets.AutoCommit.Interval = time.Second

	client, err := sarama.NewConsumerGroup(brokerAddrs, groupID, config)
	if err != nil {
		return nil, err
	}

	return &subscriber{
		groupID:     groupID,
		brokerAddrs: brokerAddrs,
		topics:      topics,
		client:      client,
		handler:     handler,
	}, nil
}

func (s *subscriber) Stop(ctx context.Context) error {
	return s.client.Close()
}

// Subscribe consumes until ctx is done or the group is closed. Broker errors
// are retried with an exponential backoff which resets after a clean session.
func (s *subscriber) Subscribe(ctx context.Context) error {
	consumer := &consumerGroupHandler{fn: s.handler}
	retry := backoff.NewExponentialBackOff()
	retry.MaxInterval = maxConsumeBackoff

	for {
		// Consume returns on every server-side rebalance, the session must be
		// recreated to get the new claims.
		err := s.client.Consume(ctx, s.topics, consumer)
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			return nil
		case ctx.Err() != nil:
			return nil
		case err == nil:
			retry.Reset()
			continue
		}

		wait := retry.NextBackOff()
		xcontext.Logger(ctx).Warnf("Kafka group %s cannot consume, retry in %s: %v", s.groupID, wait, err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

const maxConsumeBackoff = 30 * time.Second

type consumerGroupHandler struct {
	fn pubsub.SubscribeHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(
	session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim,
) error {
	for message := range claim.Messages() {
		h.handle(session.Context(), message)
		session.MarkMessage(message, "")
	}

	return nil
}

// handle isolates a panicking handler, the message is still marked so it is
// not redelivered forever.
func (h *consumerGroupHandler) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	defer func() {
		if r := recover(); r != nil {
			xcontext.Logger(ctx).Errorf("Handler panicked on %s/%d/%d: %v",
				message.Topic, message.Partition, message.Offset, r)
		}
	}()

	h.fn(ctx, &pubsub.Pack{Key: message.Key, Msg: message.Value}, message.Timestamp)
}
