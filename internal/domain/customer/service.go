package customer

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Service implements customer creation.
type Service struct {
	customers Repository
	now       func() time.Time
	newID     func() string
}

// NewService creates a customer Service.
func NewService(customers Repository) *Service {
	return &Service{
		customers: customers,
		now:       time.Now,
		newID:     func() string { return "cust-" + uuid.NewString()[:8] },
	}
}

// FromForm converts a create form into a customer record without an id.
func FromForm(f Form, now time.Time) Customer {
	phone := strings.TrimSpace(f.PhoneNumber)
	if phone != "" && f.PhoneCode != "" {
		phone = f.PhoneCode + " " + phone
	}
	return Customer{
		Name:            strings.TrimSpace(f.FirstName + " " + f.LastName),
		Email:           f.Email,
		Phone:           phone,
		Status:          StatusActive,
		CreatedAt:       now.Format("2006-01-02"),
		Language:        f.Language,
		MarketingEmails: f.MarketingEmails,
		MarketingSMS:    f.MarketingSMS,
		VATNumber:       f.VATNumber,
		TaxSettings:     f.TaxSettings,
		Notes:           f.Notes,
		Tags:            f.Tags,
	}
}

// Create stores a new customer. Id, status and creation date are assigned
// when missing.
func (s *Service) Create(ctx context.Context, c Customer) (Customer, error) {
	if c.ID == "" {
		c.ID = s.newID()
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	if c.CreatedAt == "" {
		c.CreatedAt = s.now().Format("2006-01-02")
	}
	created, err := s.customers.Create(ctx, c)
	if err != nil {
		return Customer{}, errors.Wrap(err, "create customer")
	}
	return created, nil
}
