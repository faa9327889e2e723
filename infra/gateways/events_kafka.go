package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net"
	"time"

	"github.com/giovaniif/items/infra"
	"github.com/giovaniif/items/protocols"
	"github.com/segmentio/kafka-go"
)

var (
	MAX_PUBLISH_ATTEMPTS = 3
	PUBLISH_BASE_DELAY   = 100 * time.Millisecond
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type EventPublisherKafka struct {
	writer  MessageWriter
	sleeper protocols.Sleeper
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

func NewEventPublisherKafka(writer MessageWriter, sleeper protocols.Sleeper) *EventPublisherKafka {
	return &EventPublisherKafka{writer: writer, sleeper: sleeper}
}

func (p *EventPublisherKafka) Publish(ctx context.Context, event protocols.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	message := kafka.Message{
		Key:   []byte(event.ItemId.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	var lastError error
	for i := 0; i < MAX_PUBLISH_ATTEMPTS; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := classifyKafkaError(p.writer.WriteMessages(ctx, message))
		if err == nil {
			return nil
		}
		if !infra.IsRetriable(err) {
			return err
		}
		lastError = err
		if i < MAX_PUBLISH_ATTEMPTS-1 {
			delay := time.Duration(math.Pow(2, float64(i))) * PUBLISH_BASE_DELAY
			p.sleeper.Sleep(delay)
		}
	}
	return lastError
}

func (p *EventPublisherKafka) Close() error {
	return p.writer.Close()
}

func classifyKafkaError(err error) error {
	if err == nil {
		return nil
	}
	var writeErrors kafka.WriteErrors
	if errors.As(err, &writeErrors) {
		for _, e := range writeErrors {
			if e != nil {
				return classifyKafkaError(e)
			}
		}
		return nil
	}
	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		if kafkaErr.Timeout() {
			return infra.NewTimeoutError(kafkaErr)
		}
		if kafkaErr.Temporary() {
			return infra.NewNetworkError(kafkaErr)
		}
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return infra.NewTimeoutError(netErr)
		}
		return infra.NewNetworkError(netErr)
	}
	return err
}
