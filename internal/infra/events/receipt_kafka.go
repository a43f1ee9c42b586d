package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	EventCheckoutCompleted = "checkout.completed"
	DefaultTopic           = "storefront.checkouts"
)

// kafka.Writer のうち使う部分
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ReceiptPublisher struct {
	writer messageWriter
	now    func() time.Time
}

var _ repo.ReceiptPublisher = (*ReceiptPublisher)(nil)

// ParseBrokers はカンマ区切りのブローカー一覧を分ける。空なら nil。
func ParseBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewKafkaReceiptPublisher(brokers []string, topic string) *ReceiptPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return newReceiptPublisher(w, time.Now)
}

func newReceiptPublisher(w messageWriter, now func() time.Time) *ReceiptPublisher {
	return &ReceiptPublisher{writer: w, now: now}
}

type receiptLineEvent struct {
	VariantID int64           `json:"variant_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type checkoutCompletedEvent struct {
	EventID            string             `json:"event_id"`
	EventType          string             `json:"event_type"`
	OccurredAt         time.Time          `json:"occurred_at"`
	Code               string             `json:"code"`
	CustomerIdentifier string             `json:"customer_identifier"`
	Total              decimal.Decimal    `json:"total"`
	Lines              []receiptLineEvent `json:"lines"`
	PlacedAt           time.Time          `json:"placed_at"`
}

// PublishReceipt は注文コードをキーにして1件送る。
func (p *ReceiptPublisher) PublishReceipt(ctx context.Context, r model.Receipt) error {
	lines := make([]receiptLineEvent, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, receiptLineEvent{
			VariantID: l.VariantID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	ev := checkoutCompletedEvent{
		EventID:            uuid.NewString(),
		EventType:          EventCheckoutCompleted,
		OccurredAt:         p.now().UTC(),
		Code:               r.Code,
		CustomerIdentifier: r.CustomerIdentifier,
		Total:              r.Total,
		Lines:              lines,
		PlacedAt:           r.Timestamp,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", EventCheckoutCompleted, err)
	}

	msg := kafka.Message{
		Key:   []byte(r.Code),
		Value: data,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventCheckoutCompleted)},
			{Key: "event_id", Value: []byte(ev.EventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", EventCheckoutCompleted, err)
	}
	return nil
}

func (p *ReceiptPublisher) Close() error {
	return p.writer.Close()
}
