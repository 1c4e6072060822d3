package orders

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeHistory struct {
	orders map[string][]Order
	err    error
	calls  int
}

func (f *fakeHistory) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.orders[userID], nil
}

func TestListOrders_NewestFirst(t *testing.T) {
	now := time.Now().UTC()
	src := &fakeHistory{orders: map[string][]Order{
		"u1": {
			{ID: "o2", UserID: "u1", CreatedAt: now},
			{ID: "o1", UserID: "u1", CreatedAt: now.Add(-time.Hour)},
		},
	}}
	q := &Query{Source: src}

	got, err := q.ListOrders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "o2" || got[1].ID != "o1" {
		t.Errorf("expected [o2 o1], got %+v", got)
	}
}

func TestListOrders_EmptyIsNotError(t *testing.T) {
	q := &Query{Source: &fakeHistory{orders: map[string][]Order{}}}

	got, err := q.ListOrders(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("no orders must not be an error, got: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestListOrders_IdempotentRead(t *testing.T) {
	src := &fakeHistory{orders: map[string][]Order{
		"u1": {{ID: "o1", UserID: "u1", TotalAmount: 100}},
	}}
	q := &Query{Source: src}

	first, err := q.ListOrders(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := q.ListOrders(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].TotalAmount != second[i].TotalAmount {
			t.Errorf("read %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestListOrders_SourceError(t *testing.T) {
	boom := errors.New("boom")
	q := &Query{Source: &fakeHistory{err: boom}}

	_, err := q.ListOrders(context.Background(), "u1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got: %v", err)
	}
}
