package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
)

func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Return.Successes = true
	cfg.Net.DialTimeout = 5 * time.Second
	return sarama.NewSyncProducer(brokers, cfg)
}

// StatusProducer feeds the analytics topic with order status changes.
// Keyed by order id so per-order ordering is preserved.
type StatusProducer struct {
	p     sarama.SyncProducer
	topic string
}

func NewStatusProducer(p sarama.SyncProducer, topic string) *StatusProducer {
	return &StatusProducer{p: p, topic: topic}
}

func (s *StatusProducer) PublishStatusChanged(_ context.Context, msg usecase.OrderStatusChangedMsg) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal status change: %w", err)
	}
	_, _, err = s.p.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(msg.OrderID, 10)),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("send status change: %w", err)
	}
	return nil
}

var _ usecase.StatusPublisher = (*StatusProducer)(nil)
