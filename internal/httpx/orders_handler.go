package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/Ishangupta-cyber/BookStoreManagement/internal/kafka"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/orders"
	"github.com/Ishangupta-cyber/BookStoreManagement/internal/redisx"
)

type OrdersHandler struct {
	Engine   *orders.Engine
	Query    *orders.Query
	Producer *kafkax.Producer
	Redis    *redis.Client
	Service  string
}

// PlaceOrderReq menerima dua bentuk: daftar items, atau shortcut satu buku
// (book_id + quantity) seperti API aslinya. Shortcut dilipat jadi list
// satu elemen; jalur kodenya sama.
type PlaceOrderReq struct {
	Items    []orders.ItemInput `json:"items"`
	BookID   string             `json:"book_id"`
	Quantity int                `json:"quantity"`
}

func (req PlaceOrderReq) normalized() []orders.ItemInput {
	if req.BookID != "" && req.Quantity != 0 {
		return []orders.ItemInput{{BookID: req.BookID, Quantity: req.Quantity}}
	}
	return req.Items
}

func (h *OrdersHandler) Register(r *chi.Mux, authorize func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Post("/order/place", h.placeOrder)
		r.Get("/order/history", h.orderHistory)
	})
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	caller := UserFrom(r.Context())

	var req PlaceOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context5s(r)
	defer cancel()

	order, err := h.Engine.PlaceOrder(ctx, caller.ID, caller.Role, req.normalized())
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	// riwayat yang di-cache sudah basi
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrderHistory, caller.ID)).Err()

	h.publishPlaced(r, order)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Order placed successfully. Inventory updated.",
		"order":   order,
	})
}

func (h *OrdersHandler) publishPlaced(r *http.Request, order *orders.Order) {
	items := make([]orders.PlacedItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, orders.PlacedItem{
			BookID:          it.BookID,
			Qty:             it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: order.ID,
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			OrderID:     order.ID,
			UserID:      order.UserID,
			Items:       items,
			TotalAmount: order.TotalAmount,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(order.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) orderHistory(w http.ResponseWriter, r *http.Request) {
	caller := UserFrom(r.Context())

	ctx, cancel := context3s(r)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyOrderHistory, caller.ID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	// 2) fallback DB
	list, err := h.Query.ListOrders(ctx, caller.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve order history.")
		return
	}

	body, _ := json.Marshal(map[string]any{
		"success": true,
		"results": len(list),
		"data":    list,
	})
	_ = h.Redis.Set(ctx, key, body, redisx.TTLOrderHistory).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
