package order

import (
	"context"
	"fmt"
	"strings"

	"toko-be/internal/auth"
	"toko-be/internal/logger"
	"toko-be/internal/metrics"
	"toko-be/internal/notify"
	"toko-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceOrderInput is what the checkout form submits. Prices are absent on
// purpose; the repository reads them from the catalog.
type PlaceOrderInput struct {
	Shipping   ShippingSnapshot
	CardHolder string
	CardNumber string
}

type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error)
	GetOrders(ctx context.Context, filter *FilterInput, sort *SortInput, page, limit int32) ([]*Order, error)
	GetDetail(ctx context.Context, orderID uuid.UUID) (*Order, error)
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, newStatus string) (*Order, error)
}

type service struct {
	repo   Repository
	stats  *metrics.Store
	mailer notify.Sender
}

func NewService(repo Repository, stats *metrics.Store, mailer notify.Sender) Service {
	return &service{repo: repo, stats: stats, mailer: mailer}
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if err := validateShipping(input.Shipping); err != nil {
		return nil, err
	}

	payment, err := maskCard(input.CardHolder, input.CardNumber)
	if err != nil {
		return nil, err
	}

	invoiceNumber := utils.GenerateInvoiceNumber()

	o, err := s.repo.CreateFromCart(ctx, actor.UserID, input.Shipping, payment, invoiceNumber)
	if err != nil {
		log.Warn("failed to place order", zap.Error(err))
		return nil, err
	}

	if s.stats != nil {
		s.stats.OrdersPlaced.Inc()
	}

	if s.mailer != nil && actor.Email != "" {
		subject := fmt.Sprintf("Order confirmation %s", o.InvoiceNumber)
		body := fmt.Sprintf("Your order %s for %s has been received.", o.InvoiceNumber, o.Total.String())
		if mailErr := s.mailer.Send(ctx, actor.Email, subject, body); mailErr != nil {
			// The order is already committed; a failed confirmation email
			// must not fail the request.
			log.Warn("failed to send order confirmation", zap.Error(mailErr))
		}
	}

	log.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("invoice_number", o.InvoiceNumber),
	)

	return o, nil
}

func (s *service) GetOrders(
	ctx context.Context,
	filter *FilterInput,
	sort *SortInput,
	page, limit int32,
) ([]*Order, error) {

	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if filter == nil {
		filter = &FilterInput{}
	}

	// Shoppers only ever see their own orders, whatever the filter says.
	if !actor.IsAdmin {
		uid := actor.UserID
		filter.UserID = &uid
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	return s.repo.GetOrders(ctx, filter, sort, limit, offset)
}

func (s *service) GetDetail(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && o.UserID != actor.UserID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

func (s *service) AdvanceStatus(ctx context.Context, orderID uuid.UUID, newStatus string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdvanceStatus"),
		zap.String("order_id", orderID.String()),
	)

	actor, ok := auth.ActorFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	status, ok := ParseStatus(newStatus)
	if !ok {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.AdvanceStatus(ctx, orderID, status)
	if err != nil {
		log.Warn("failed to advance order status", zap.Error(err))
		return nil, err
	}

	if s.stats != nil && status == StatusShipped {
		s.stats.OrdersShipped.Inc()
	}

	log.Info("order status advanced", zap.String("status", string(status)))

	return o, nil
}

func validateShipping(sh ShippingSnapshot) error {
	for _, field := range []string{sh.FullName, sh.Address, sh.City, sh.PostalCode, sh.Country} {
		if strings.TrimSpace(field) == "" {
			return ErrInvalidShipping
		}
	}
	return nil
}

// maskCard keeps only the holder name and the last four digits. The full
// PAN is never stored or logged.
func maskCard(holder, number string) (PaymentSnapshot, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if strings.TrimSpace(holder) == "" || len(digits) < 12 {
		return PaymentSnapshot{}, ErrInvalidPayment
	}

	return PaymentSnapshot{
		CardHolder: strings.TrimSpace(holder),
		CardLast4:  digits[len(digits)-4:],
	}, nil
}
