package cart

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/veldbloem/storefront/internal/metrics"
	"github.com/veldbloem/storefront/internal/models"
)

// NoticeKind classifies the transient notification an Add emits for the
// presentation layer to display once and discard.
type NoticeKind int

const (
	// NoticeAdded means the product was added or its quantity bumped.
	NoticeAdded NoticeKind = iota
	// NoticeStockLimit means the add was rejected at the stock ceiling.
	NoticeStockLimit
)

// Notice is the outcome of an Add, carrying the product name for display.
type Notice struct {
	Kind        NoticeKind
	ProductName string
}

// Store holds the shopper's intended purchases, one cart per key, and
// enforces per-item stock ceilings on add. The ceiling is a convenience
// check against the stock snapshot taken at add time; the backend is the
// final authority at order submission. Aggregates are recomputed from the
// line collection on every read, never stored.
//
// Construct one Store in main and inject it; persistence sits behind the
// Keeper interface so tests run on the memory driver.
type Store struct {
	keeper Keeper
	mu     sync.Mutex
}

func NewStore(keeper Keeper) *Store {
	return &Store{keeper: keeper}
}

// Add merges a product snapshot into the cart. First add of an id inserts
// a line with quantity 1; a repeat add increments the quantity unless the
// line already sits at its stock ceiling, in which case nothing changes
// and a stock-limit notice is returned. Add never exceeds AvailableStock.
func (s *Store) Add(ctx context.Context, key string, req models.AddItemRequest) (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.keeper.Load(ctx, key)
	if err != nil {
		metrics.CartOperationsTotal.WithLabelValues("add", "error").Inc()
		return Notice{}, err
	}

	for i := range items {
		if items[i].ID != req.ID {
			continue
		}
		if items[i].Quantity >= items[i].AvailableStock {
			log.WithFields(log.Fields{
				"cart_key":   key,
				"product_id": req.ID,
			}).Debug("Add rejected at stock ceiling")
			metrics.CartOperationsTotal.WithLabelValues("add", "stock_limit").Inc()
			return Notice{Kind: NoticeStockLimit, ProductName: items[i].Name}, nil
		}

		items[i].Quantity++
		if err := s.keeper.Save(ctx, key, items); err != nil {
			metrics.CartOperationsTotal.WithLabelValues("add", "error").Inc()
			return Notice{}, err
		}
		metrics.CartOperationsTotal.WithLabelValues("add", "ok").Inc()
		return Notice{Kind: NoticeAdded, ProductName: items[i].Name}, nil
	}

	if req.AvailableStock < 1 {
		metrics.CartOperationsTotal.WithLabelValues("add", "stock_limit").Inc()
		return Notice{Kind: NoticeStockLimit, ProductName: req.Name}, nil
	}

	items = append(items, models.CartItem{
		ID:                req.ID,
		Name:              req.Name,
		UnitPriceCents:    req.UnitPriceCents,
		UnitDiscountCents: req.UnitDiscountCents,
		Quantity:          1,
		AvailableStock:    req.AvailableStock,
	})
	if err := s.keeper.Save(ctx, key, items); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("add", "error").Inc()
		return Notice{}, err
	}
	metrics.CartOperationsTotal.WithLabelValues("add", "ok").Inc()
	return Notice{Kind: NoticeAdded, ProductName: req.Name}, nil
}

// Remove deletes the line for the given product id. Removing an absent id
// is a valid no-op, not an error.
func (s *Store) Remove(ctx context.Context, key, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.keeper.Load(ctx, key)
	if err != nil {
		metrics.CartOperationsTotal.WithLabelValues("remove", "error").Inc()
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		metrics.CartOperationsTotal.WithLabelValues("remove", "noop").Inc()
		return nil
	}

	if err := s.keeper.Save(ctx, key, kept); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("remove", "error").Inc()
		return err
	}
	metrics.CartOperationsTotal.WithLabelValues("remove", "ok").Inc()
	return nil
}

// SetQuantity replaces a line's quantity. Zero or below behaves as Remove.
// The value is deliberately uncapped here: the quantity stepper in the UI
// owns the stock bound, and the backend re-validates at order time.
func (s *Store) SetQuantity(ctx context.Context, key, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, key, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.keeper.Load(ctx, key)
	if err != nil {
		metrics.CartOperationsTotal.WithLabelValues("set_quantity", "error").Inc()
		return err
	}

	for i := range items {
		if items[i].ID != productID {
			continue
		}
		items[i].Quantity = quantity
		if err := s.keeper.Save(ctx, key, items); err != nil {
			metrics.CartOperationsTotal.WithLabelValues("set_quantity", "error").Inc()
			return err
		}
		metrics.CartOperationsTotal.WithLabelValues("set_quantity", "ok").Inc()
		return nil
	}

	metrics.CartOperationsTotal.WithLabelValues("set_quantity", "noop").Inc()
	return nil
}

// Clear empties the cart. Called after a confirmed order and by the
// clear-cart endpoint.
func (s *Store) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.keeper.Delete(ctx, key); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("clear", "error").Inc()
		return err
	}
	metrics.CartOperationsTotal.WithLabelValues("clear", "ok").Inc()
	return nil
}

// Items returns the raw line collection.
func (s *Store) Items(ctx context.Context, key string) ([]models.CartItem, error) {
	return s.keeper.Load(ctx, key)
}

// Summary loads the cart and recomputes its aggregates.
func (s *Store) Summary(ctx context.Context, key string) (models.CartSummary, error) {
	items, err := s.keeper.Load(ctx, key)
	if err != nil {
		return models.CartSummary{}, err
	}
	return Summarize(items), nil
}

// Summarize computes the derived cart values from a line collection.
func Summarize(items []models.CartItem) models.CartSummary {
	summary := models.CartSummary{Items: items}
	if items == nil {
		summary.Items = []models.CartItem{}
	}

	for _, item := range items {
		summary.TotalCents += item.LineTotalCents()
		summary.DiscountTotalCents += item.UnitDiscountCents * int64(item.Quantity)
		summary.ItemCount += item.Quantity
	}
	summary.DisplayTotal = models.FormatEUR(summary.TotalCents)
	return summary
}
