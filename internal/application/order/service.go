package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikhstore/storefront/internal/domain/cart"
	"github.com/sheikhstore/storefront/internal/domain/order"
)

// Poster submits one order request to the backend.
type Poster interface {
	CreateOrder(ctx context.Context, idempotencyKey string, req order.Request) (*order.Confirmation, error)
}

// CartSource exposes the global cart to the workflow: a snapshot to
// order from and a clear for the success path.
type CartSource interface {
	Snapshot() []cart.LineItem
	Clear(ctx context.Context)
}

// ValidationError reports the checkout form fields that failed the
// required-field checks. Submission is never attempted while it is
// non-nil; the form surfaces each message inline next to its field.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	return "invalid checkout form: " + strings.Join(names, ", ")
}

// CheckoutRequest is one user-initiated submission. Items, when set,
// bypass the global cart (the "buy now" flow); when nil the live cart
// snapshot is ordered and cleared on success.
type CheckoutRequest struct {
	Items          []cart.LineItem
	Customer       order.CustomerForm
	ShippingMethod order.ShippingMethod
}

// Result describes a successful submission.
type Result struct {
	Confirmation   *order.Confirmation
	Total          decimal.Decimal
	IdempotencyKey string
	ClearedCart    bool
}

// Service is the order submission workflow: validate the form, compose
// the request from captured cart prices, submit exactly once, and clear
// the cart only on a success that ordered the cart itself.
type Service struct {
	poster   Poster
	carts    CartSource
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates the order workflow.
func NewService(poster Poster, carts CartSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		poster:   poster,
		carts:    carts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Checkout runs one submission attempt. On any error the cart is left
// untouched so the user can correct and retry; there is no partial
// application and no automatic retry.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Result, error) {
	if err := s.validateForm(req.Customer); err != nil {
		return nil, err
	}

	fromCart := req.Items == nil
	items := req.Items
	if fromCart {
		items = s.carts.Snapshot()
	}

	orderReq, err := order.NewRequest(items, req.Customer.Info(), req.ShippingMethod)
	if err != nil {
		return nil, err
	}

	// One fresh key per attempt; a retry after failure is a new attempt.
	idempotencyKey := uuid.NewString()

	confirmation, err := s.poster.CreateOrder(ctx, idempotencyKey, orderReq)
	if err != nil {
		s.logger.Warn("order submission failed",
			zap.String("idempotency_key", idempotencyKey),
			zap.Error(err))
		return nil, fmt.Errorf("submitting order: %w", err)
	}

	if fromCart {
		s.carts.Clear(ctx)
	}

	s.logger.Info("order submitted",
		zap.String("idempotency_key", idempotencyKey),
		zap.String("total", orderReq.Total.String()),
		zap.Int("lines", len(orderReq.Items)))

	return &Result{
		Confirmation:   confirmation,
		Total:          orderReq.Total,
		IdempotencyKey: idempotencyKey,
		ClearedCart:    fromCart,
	}, nil
}

// validateForm runs the required-field checks and maps violations to
// their JSON field names.
func (s *Service) validateForm(form order.CustomerForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe.Field())] = "this field is required"
	}
	return &ValidationError{Fields: fields}
}

// fieldName converts a struct field name to its JSON form.
func fieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Phone":
		return "phone"
	case "StreetNumber":
		return "street_number"
	case "AreaNumber":
		return "area_number"
	case "VillaNumber":
		return "villa_number"
	case "Notes":
		return "notes"
	default:
		return strings.ToLower(structField)
	}
}
