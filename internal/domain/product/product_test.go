package product

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/backoffice/internal/entity"
)

type mockProductRepo struct {
	created []Product
	err     error
}

func (m *mockProductRepo) Get(context.Context, string) (Product, error) {
	return Product{}, entity.ErrNotFound
}

func (m *mockProductRepo) Update(context.Context, string, entity.Patch[Product]) (Product, error) {
	return Product{}, entity.ErrNotFound
}

func (m *mockProductRepo) List(context.Context) ([]Product, error) {
	return m.created, nil
}

func (m *mockProductRepo) Create(_ context.Context, p Product) (Product, error) {
	if m.err != nil {
		return Product{}, m.err
	}
	m.created = append(m.created, p)
	return p, nil
}

func TestCreate_Defaults(t *testing.T) {
	repo := &mockProductRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.UnixMilli(1_722_000_000_000) }

	p, err := svc.Create(context.Background(), Product{
		SKU:    "SKU-1",
		Name:   "Kettle",
		Rating: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, "1722000000000", p.ID)
	assert.Equal(t, PlaceholderImage, p.Image)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Zero(t, p.Rating)
	assert.Equal(t, CurrentVersion, p.SchemaVersion)
}

func TestCreate_Error(t *testing.T) {
	svc := NewService(&mockProductRepo{err: errors.New("disk full")})

	_, err := svc.Create(context.Background(), Product{Name: "Kettle"})
	require.Error(t, err)
}

func TestMigrate(t *testing.T) {
	p := Product{ID: "3", Name: "Sony WH-1000XM4", SchemaVersion: Version1}

	require.True(t, Migrate(&p))
	assert.Equal(t, CurrentVersion, p.SchemaVersion)
	assert.Equal(t, "LEGACY-3", p.SKU)
	assert.Equal(t, "Sony WH-1000XM4", p.ShortName)

	assert.False(t, Migrate(&p), "already current")
}

func TestMigrate_KeepsExistingSKU(t *testing.T) {
	p := Product{ID: "3", SKU: "SONY-XM4"}
	require.True(t, Migrate(&p))
	assert.Equal(t, "SONY-XM4", p.SKU)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$269", FormatPrice(decimal.NewFromInt(269)))
	assert.Equal(t, "$12.50", FormatPrice(decimal.RequireFromString("12.5")))
}

func TestEditSchema_RatingClamp(t *testing.T) {
	var p Product

	require.NoError(t, EditSchema.Set(&p, "rating", "7"))
	assert.Equal(t, 5.0, p.Rating)

	require.NoError(t, EditSchema.Set(&p, "rating", "-2"))
	assert.Equal(t, 0.0, p.Rating)

	require.NoError(t, EditSchema.Set(&p, "rating", ""))
	assert.Equal(t, 0.0, p.Rating)
}

func TestEditSchema_Price(t *testing.T) {
	var p Product
	require.NoError(t, EditSchema.Set(&p, "price", "$1,299"))
	assert.True(t, decimal.NewFromInt(1299).Equal(p.Price))
}

func TestCreateSchema_Validate(t *testing.T) {
	p := Template()
	err := CreateSchema.Validate(&p)
	require.Error(t, err)
	assert.Equal(t, "Product Name, Selling Price, SKU, and Category are required.", err.Error())

	p.SKU = "SKU-1"
	p.Name = "Kettle"
	p.Category = "Kitchen"
	p.Price = decimal.NewFromInt(20)
	require.NoError(t, CreateSchema.Validate(&p))
}

func TestPatchApply(t *testing.T) {
	p := Product{ID: "1", Name: "Watch", Stock: 22}
	name := "Watch 2"
	Patch{Name: &name}.Apply(&p)

	assert.Equal(t, "Watch 2", p.Name)
	assert.Equal(t, 22, p.Stock)
	assert.True(t, Patch{}.Empty())
}
