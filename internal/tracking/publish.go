package tracking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// FleetChannel is the hub channel carrying simulator updates.
const FleetChannel = "fleet"

type Broadcaster interface {
	Broadcast(channel string, payload []byte) int
}

type HubPublisher struct {
	hub Broadcaster
}

func NewHubPublisher(hub Broadcaster) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(_ context.Context, u Update) error {
	payload, err := json.Marshal(struct {
		Type string `json:"type"`
		Update
	}{Type: "telemetry", Update: u})
	if err != nil {
		return err
	}
	p.hub.Broadcast(FleetChannel, payload)
	return nil
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits one telemetry message per changed vehicle, keyed by
// vehicle id.
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, timeout: 2 * time.Second}
}

type telemetry struct {
	VehicleID string    `json:"vehicleId"`
	Speed     float64   `json:"speed"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, u Update) error {
	if len(u.Changed) == 0 {
		return nil
	}
	changed := make(map[string]struct{}, len(u.Changed))
	for _, id := range u.Changed {
		changed[id] = struct{}{}
	}

	msgs := make([]kafka.Message, 0, len(u.Changed))
	for _, v := range u.Vehicles {
		if _, ok := changed[v.ID]; !ok {
			continue
		}
		value, err := json.Marshal(telemetry{
			VehicleID: v.ID,
			Speed:     v.Speed,
			Lat:       v.Position.Lat,
			Lng:       v.Position.Lng,
			Status:    string(v.Status),
			At:        u.At,
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: []byte(v.ID), Value: value, Time: u.At})
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
