package product

import (
	"context"
	"strconv"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/backoffice/internal/entity"
)

const maxIDAttempts = 5

// Service implements product creation.
type Service struct {
	products Repository
	now      func() time.Time
}

// NewService creates a product Service.
func NewService(products Repository) *Service {
	return &Service{
		products: products,
		now:      time.Now,
	}
}

// Create stores a new product with a clock-derived id. Missing images fall
// back to PlaceholderImage, rating is reset and the record is stamped with
// CurrentVersion.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if p.Image == "" {
		p.Image = PlaceholderImage
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	p.Rating = 0
	p.SchemaVersion = CurrentVersion

	millis := s.now().UnixMilli()
	for attempt := range maxIDAttempts {
		p.ID = strconv.FormatInt(millis+int64(attempt), 10)

		created, err := s.products.Create(ctx, p)
		if errors.Is(err, entity.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return Product{}, errors.Wrap(err, "create product")
		}
		return created, nil
	}
	return Product{}, errors.Errorf("create product: no free id after %d attempts", maxIDAttempts)
}
