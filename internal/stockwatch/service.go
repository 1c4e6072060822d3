package stockwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/Ishangupta-cyber/BookStoreManagement/internal/books"
	kafkax "github.com/Ishangupta-cyber/BookStoreManagement/internal/kafka"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/orders"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/redisx"
)

// Catalog cukup Lookup; stockwatch tidak pernah memutasi stok.
type Catalog interface {
	Lookup(ctx context.Context, bookID string) (books.Info, error)
}

// Service mengawasi event order.placed dan menerbitkan alert stock.low
// saat stok buku jatuh ke ambang batas atau di bawahnya.
type Service struct {
	Catalog     Catalog
	Redis       *redis.Client
	Producer    *kafkax.Producer
	ServiceName string
	Threshold   int
}

// HandleOrderPlaced: dipasang sebagai handler consumer.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil // ignore
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, "stockwatch", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	for _, it := range p.Items {
		info, err := s.Catalog.Lookup(ctx, it.BookID)
		if err != nil {
			// buku bisa saja sudah dihapus; alert bukan jalur kritis
			log.Printf("stockwatch lookup %s: %v", it.BookID, err)
			continue
		}
		if info.Stock > s.Threshold {
			continue
		}
		s.publishLow(env.TraceID, orders.StockLowPayload{
			BookID:    it.BookID,
			Title:     info.Title,
			Stock:     info.Stock,
			Threshold: s.Threshold,
			OrderID:   p.OrderID,
		})
	}
	return nil
}

func (s *Service) publishLow(trace string, payload orders.StockLowPayload) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventStockLow,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: payload.OrderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	s.Producer.Publish(orders.PartitionKey(payload.BookID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventStockLow)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	log.Printf("stock low: book=%s stock=%d threshold=%d", payload.BookID, payload.Stock, payload.Threshold)
}
