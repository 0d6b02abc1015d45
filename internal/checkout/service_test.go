package checkout

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/veldbloem/storefront/internal/backend"
	"github.com/veldbloem/storefront/internal/cart"
	"github.com/veldbloem/storefront/internal/i18n"
	"github.com/veldbloem/storefront/internal/models"
)

type fakePlacer struct {
	mu      sync.Mutex
	ack     models.OrderAck
	err     error
	calls   int
	lastReq models.OrderRequest

	// entered/release let a test hold a submission in flight.
	entered chan struct{}
	release chan struct{}
}

func (f *fakePlacer) CreateOrder(ctx context.Context, req models.OrderRequest) (models.OrderAck, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.ack, f.err
}

func (f *fakePlacer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestService(placer *fakePlacer) (*Service, *cart.Store) {
	store := cart.NewStore(cart.NewMemoryKeeper())
	svc := NewService(store, placer, NewMemoryTokens(), "Nederland")
	return svc, store
}

func fillCart(t *testing.T, store *cart.Store, key string) {
	t.Helper()
	req := models.AddItemRequest{
		ID:                "p1",
		Name:              "Tulpenboeket",
		UnitPriceCents:    2500,
		UnitDiscountCents: 500,
		AvailableStock:    5,
	}
	for i := 0; i < 2; i++ {
		if _, err := store.Add(context.Background(), key, req); err != nil {
			t.Fatalf("fill cart: %v", err)
		}
	}
}

func TestSubmitBlocksOnValidation(t *testing.T) {
	placer := &fakePlacer{}
	svc, store := newTestService(placer)
	fillCart(t, store, "k")

	form := validForm()
	form.Email = "not-an-email"

	result := svc.Submit(context.Background(), "k", form, i18n.LocaleDutch)
	if result.Status != StatusFieldErrors {
		t.Fatalf("got status %d, want StatusFieldErrors", result.Status)
	}
	if _, ok := result.FieldErrors["email"]; !ok {
		t.Errorf("expected an email field error, got %v", result.FieldErrors)
	}
	if placer.callCount() != 0 {
		t.Errorf("backend must not be called on validation failure, got %d calls", placer.callCount())
	}
}

func TestSubmitBlocksOnEmptyCart(t *testing.T) {
	placer := &fakePlacer{}
	svc, _ := newTestService(placer)

	result := svc.Submit(context.Background(), "k", validForm(), i18n.LocaleEnglish)
	if result.Status != StatusEmptyCart {
		t.Fatalf("got status %d, want StatusEmptyCart", result.Status)
	}
	if result.Message != i18n.T(i18n.LocaleEnglish, i18n.MsgCartEmpty) {
		t.Errorf("got message %q", result.Message)
	}
	if placer.callCount() != 0 {
		t.Errorf("backend must not be called for an empty cart, got %d calls", placer.callCount())
	}
}

func TestSubmitSuccessClearsCartAndMintsToken(t *testing.T) {
	placer := &fakePlacer{ack: models.OrderAck{OrderNumber: "ORD-1234"}}
	svc, store := newTestService(placer)
	fillCart(t, store, "k")
	ctx := context.Background()

	result := svc.Submit(ctx, "k", validForm(), i18n.LocaleDutch)
	if result.Status != StatusPlaced {
		t.Fatalf("got status %d, want StatusPlaced (message %q)", result.Status, result.Message)
	}
	if result.OrderNumber != "ORD-1234" {
		t.Errorf("got order number %q", result.OrderNumber)
	}

	items, _ := store.Items(ctx, "k")
	if len(items) != 0 {
		t.Errorf("cart should be empty after success, got %d lines", len(items))
	}

	first, _ := svc.Confirmation(ctx, "ORD-1234")
	if !first.JustPlaced {
		t.Error("first confirmation read should report just_placed")
	}
	second, _ := svc.Confirmation(ctx, "ORD-1234")
	if second.JustPlaced {
		t.Error("just_placed must not survive a second read")
	}
}

func TestSubmitBuildsOrderRequest(t *testing.T) {
	placer := &fakePlacer{ack: models.OrderAck{OrderNumber: "ORD-1"}}
	svc, store := newTestService(placer)
	ctx := context.Background()
	fillCart(t, store, "k")
	store.Add(ctx, "k", models.AddItemRequest{ID: "p2", Name: "Droogbloemen", UnitPriceCents: 1800, AvailableStock: 3})

	form := validForm()
	form.Country = ""
	svc.Submit(ctx, "k", form, i18n.LocaleDutch)

	req := placer.lastReq
	if req.Country != "Nederland" {
		t.Errorf("got country %q, want the shop default", req.Country)
	}
	if len(req.Products) != 2 || req.Products["p1"] != 2 || req.Products["p2"] != 1 {
		t.Errorf("got products %v", req.Products)
	}
	if req.Name != form.Name || req.City != form.City {
		t.Errorf("contact fields not carried: %+v", req.CheckoutForm)
	}
}

func TestSubmitRateLimitedEmbedsCooldown(t *testing.T) {
	placer := &fakePlacer{err: &backend.OrderError{Kind: backend.KindRateLimited, CooldownMinutes: 15}}
	svc, store := newTestService(placer)
	fillCart(t, store, "k")
	ctx := context.Background()

	result := svc.Submit(ctx, "k", validForm(), i18n.LocaleEnglish)
	if result.Status != StatusRateLimited {
		t.Fatalf("got status %d, want StatusRateLimited", result.Status)
	}
	if !strings.Contains(result.Message, "15") {
		t.Errorf("message should embed the cooldown, got %q", result.Message)
	}

	items, _ := store.Items(ctx, "k")
	if len(items) == 0 {
		t.Error("cart must be untouched on rate limit")
	}
}

func TestSubmitRateLimitedDefaultsTo30(t *testing.T) {
	placer := &fakePlacer{err: &backend.OrderError{Kind: backend.KindRateLimited}}
	svc, store := newTestService(placer)
	fillCart(t, store, "k")

	result := svc.Submit(context.Background(), "k", validForm(), i18n.LocaleEnglish)
	if !strings.Contains(result.Message, "30") {
		t.Errorf("message should fall back to 30 minutes, got %q", result.Message)
	}
}

func TestSubmitRejectedSurfacesMessageVerbatim(t *testing.T) {
	placer := &fakePlacer{err: &backend.OrderError{Kind: backend.KindRejected, Message: "Product Tulpenboeket is uitverkocht"}}
	svc, store := newTestService(placer)
	fillCart(t, store, "k")
	ctx := context.Background()

	result := svc.Submit(ctx, "k", validForm(), i18n.LocaleDutch)
	if result.Status != StatusRejected {
		t.Fatalf("got status %d, want StatusRejected", result.Status)
	}
	if result.Message != "Product Tulpenboeket is uitverkocht" {
		t.Errorf("server message not verbatim: %q", result.Message)
	}

	items, _ := store.Items(ctx, "k")
	if len(items) == 0 {
		t.Error("cart must be untouched on rejection")
	}
}

func TestSubmitTransportFallsBackToGenericMessage(t *testing.T) {
	placer := &fakePlacer{err: &backend.OrderError{Kind: backend.KindTransport}}
	svc, store := newTestService(placer)
	fillCart(t, store, "k")
	ctx := context.Background()

	result := svc.Submit(ctx, "k", validForm(), i18n.LocaleEnglish)
	if result.Status != StatusTransportError {
		t.Fatalf("got status %d, want StatusTransportError", result.Status)
	}
	if result.Message != i18n.T(i18n.LocaleEnglish, i18n.MsgOrderFailed) {
		t.Errorf("got message %q, want the generic fallback", result.Message)
	}

	items, _ := store.Items(ctx, "k")
	if len(items) == 0 {
		t.Error("cart must be untouched on transport failure")
	}
}

func TestSubmitSingleFlightPerCart(t *testing.T) {
	placer := &fakePlacer{
		ack:     models.OrderAck{OrderNumber: "ORD-1"},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, store := newTestService(placer)
	fillCart(t, store, "k")
	ctx := context.Background()

	done := make(chan Result, 1)
	go func() {
		done <- svc.Submit(ctx, "k", validForm(), i18n.LocaleDutch)
	}()
	<-placer.entered

	second := svc.Submit(ctx, "k", validForm(), i18n.LocaleDutch)
	if second.Status != StatusInFlight {
		t.Errorf("got status %d, want StatusInFlight", second.Status)
	}

	close(placer.release)
	first := <-done
	if first.Status != StatusPlaced {
		t.Errorf("held submission should still succeed, got status %d", first.Status)
	}
	if placer.callCount() != 1 {
		t.Errorf("backend called %d times, want 1", placer.callCount())
	}
}

func TestConfirmationUnknownOrder(t *testing.T) {
	svc, _ := newTestService(&fakePlacer{})

	conf, err := svc.Confirmation(context.Background(), "ORD-9999")
	if err != nil {
		t.Fatalf("confirmation: %v", err)
	}
	if conf.JustPlaced {
		t.Error("unknown order must not report just_placed")
	}
	if conf.OrderNumber != "ORD-9999" {
		t.Errorf("got order number %q", conf.OrderNumber)
	}
}
