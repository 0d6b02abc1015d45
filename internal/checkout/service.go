package checkout

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/veldbloem/storefront/internal/backend"
	"github.com/veldbloem/storefront/internal/cart"
	"github.com/veldbloem/storefront/internal/i18n"
	"github.com/veldbloem/storefront/internal/metrics"
	"github.com/veldbloem/storefront/internal/models"
)

// DefaultCooldownMinutes is shown when the backend rate-limits an order
// without telling us how long to wait.
const DefaultCooldownMinutes = 30

// OrderPlacer is the slice of the backend client checkout needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (models.OrderAck, error)
}

// Status is the terminal state of one submission attempt. Only
// StatusPlaced clears the cart; every other outcome leaves the cart and
// the submitted form untouched so the shopper can correct and resubmit.
type Status int

const (
	StatusPlaced Status = iota
	StatusFieldErrors
	StatusEmptyCart
	StatusInFlight
	StatusRateLimited
	StatusRejected
	StatusTransportError
)

// Result is what one Submit call resolves to.
type Result struct {
	Status      Status
	OrderNumber string
	// FieldErrors is set for StatusFieldErrors only.
	FieldErrors map[string]string
	// Message is the localized request-level message for the failure
	// statuses.
	Message string
}

// Service orchestrates order submission: validate, gate on a non-empty
// cart, fire exactly one backend request, and clear the cart only on
// confirmed success.
type Service struct {
	cart           *cart.Store
	backend        OrderPlacer
	tokens         TokenStore
	defaultCountry string

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewService(cartStore *cart.Store, placer OrderPlacer, tokens TokenStore, defaultCountry string) *Service {
	return &Service{
		cart:           cartStore,
		backend:        placer,
		tokens:         tokens,
		defaultCountry: defaultCountry,
		inflight:       make(map[string]struct{}),
	}
}

// begin marks a submission in flight for the cart key; false if one
// already is.
func (s *Service) begin(cartKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[cartKey]; busy {
		return false
	}
	s.inflight[cartKey] = struct{}{}
	return true
}

func (s *Service) end(cartKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, cartKey)
}

// Submit runs one checkout attempt for the cart under cartKey.
func (s *Service) Submit(ctx context.Context, cartKey string, form models.CheckoutForm, locale string) Result {
	locale = i18n.Normalize(locale)

	if fieldErrs := Validate(form, locale); len(fieldErrs) > 0 {
		metrics.CheckoutsTotal.WithLabelValues("validation_failed").Inc()
		return Result{Status: StatusFieldErrors, FieldErrors: fieldErrs}
	}

	items, err := s.cart.Items(ctx, cartKey)
	if err != nil {
		log.WithError(err).Error("Failed to load cart for checkout")
		metrics.CheckoutsTotal.WithLabelValues("transport_error").Inc()
		return Result{Status: StatusTransportError, Message: i18n.T(locale, i18n.MsgOrderFailed)}
	}
	if len(items) == 0 {
		metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		return Result{Status: StatusEmptyCart, Message: i18n.T(locale, i18n.MsgCartEmpty)}
	}

	// One outstanding submission per cart; resubmission is an explicit
	// shopper action after a failure, never automatic.
	if !s.begin(cartKey) {
		metrics.CheckoutsTotal.WithLabelValues("in_flight").Inc()
		return Result{Status: StatusInFlight, Message: i18n.T(locale, i18n.MsgSubmitInFlight)}
	}
	defer s.end(cartKey)

	if form.Country == "" {
		form.Country = s.defaultCountry
	}

	products := make(map[string]int, len(items))
	for _, item := range items {
		products[item.ID] = item.Quantity
	}

	ack, err := s.backend.CreateOrder(ctx, models.OrderRequest{
		CheckoutForm: form,
		Products:     products,
	})
	if err != nil {
		return s.failureResult(err, locale)
	}

	// Success confirmed: only now does the cart go.
	if err := s.cart.Clear(ctx, cartKey); err != nil {
		log.WithFields(log.Fields{
			"order_number": ack.OrderNumber,
			"cart_key":     cartKey,
		}).WithError(err).Error("Order placed but cart clear failed")
	}
	if err := s.tokens.Mint(ctx, ack.OrderNumber); err != nil {
		log.WithField("order_number", ack.OrderNumber).WithError(err).Warn("Failed to mint confirmation token")
	}

	summary := cart.Summarize(items)
	metrics.CheckoutsTotal.WithLabelValues("placed").Inc()
	metrics.OrderAmount.Observe(float64(summary.TotalCents) / 100)

	log.WithFields(log.Fields{
		"order_number": ack.OrderNumber,
		"items":        len(items),
		"total_cents":  summary.TotalCents,
	}).Info("Order placed")

	return Result{Status: StatusPlaced, OrderNumber: ack.OrderNumber}
}

// failureResult maps the backend error taxonomy onto a Result. The cart
// is untouched on every path here.
func (s *Service) failureResult(err error, locale string) Result {
	var orderErr *backend.OrderError
	if !errors.As(err, &orderErr) {
		metrics.CheckoutsTotal.WithLabelValues("transport_error").Inc()
		return Result{Status: StatusTransportError, Message: i18n.T(locale, i18n.MsgOrderFailed)}
	}

	switch orderErr.Kind {
	case backend.KindRateLimited:
		cooldown := orderErr.CooldownMinutes
		if cooldown <= 0 {
			cooldown = DefaultCooldownMinutes
		}
		metrics.CheckoutsTotal.WithLabelValues("rate_limited").Inc()
		return Result{Status: StatusRateLimited, Message: i18n.Tf(locale, i18n.MsgRateLimited, cooldown)}
	case backend.KindRejected:
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()
		return Result{Status: StatusRejected, Message: orderErr.Message}
	default:
		metrics.CheckoutsTotal.WithLabelValues("transport_error").Inc()
		return Result{Status: StatusTransportError, Message: i18n.T(locale, i18n.MsgOrderFailed)}
	}
}

// Confirmation resolves the confirmation view for an order number,
// consuming the one-shot "just placed" signal on first read.
func (s *Service) Confirmation(ctx context.Context, orderNumber string) (models.Confirmation, error) {
	justPlaced, err := s.tokens.Take(ctx, orderNumber)
	if err != nil {
		// Losing the flag only loses the celebratory effect; the
		// confirmation page itself must still render.
		log.WithField("order_number", orderNumber).WithError(err).Warn("Failed to read confirmation token")
		justPlaced = false
	}
	return models.Confirmation{OrderNumber: orderNumber, JustPlaced: justPlaced}, nil
}
