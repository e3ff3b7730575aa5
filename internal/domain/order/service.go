package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/backoffice/internal/entity"
)

// maxIDAttempts bounds id regeneration when a generated id is already taken.
const maxIDAttempts = 5

// Service implements order operations beyond plain get/update.
type Service struct {
	orders Repository
	now    func() time.Time
}

// NewService creates an order Service.
func NewService(orders Repository) *Service {
	return &Service{
		orders: orders,
		now:    time.Now,
	}
}

// Create stores a new order. The id is generated as ORD-NNNNNN from the
// clock; a blank date defaults to today and a blank status to Pending.
func (s *Service) Create(ctx context.Context, o Order) (Order, error) {
	now := s.now()
	if o.OrderDate == "" {
		o.OrderDate = now.Format(DateLayout)
	}
	if o.Status == "" {
		o.Status = StatusPending
	}

	millis := now.UnixMilli()
	for attempt := range maxIDAttempts {
		o.ID = fmt.Sprintf("ORD-%06d", (millis+int64(attempt))%1_000_000)

		created, err := s.orders.Create(ctx, o)
		if errors.Is(err, entity.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return Order{}, errors.Wrap(err, "create order")
		}
		return created, nil
	}
	return Order{}, errors.Errorf("create order: no free id after %d attempts", maxIDAttempts)
}

// ByCustomer returns the orders placed by the given customer.
func (s *Service) ByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if o.Customer.ID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}
