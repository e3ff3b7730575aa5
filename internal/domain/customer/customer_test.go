package customer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/backoffice/internal/draft"
	"github.com/xenking/backoffice/internal/entity"
)

type mockCustomerRepo struct {
	created []Customer
}

func (m *mockCustomerRepo) Get(context.Context, string) (Customer, error) {
	return Customer{}, entity.ErrNotFound
}

func (m *mockCustomerRepo) Update(context.Context, string, entity.Patch[Customer]) (Customer, error) {
	return Customer{}, entity.ErrNotFound
}

func (m *mockCustomerRepo) List(context.Context) ([]Customer, error) {
	return m.created, nil
}

func (m *mockCustomerRepo) Create(_ context.Context, c Customer) (Customer, error) {
	m.created = append(m.created, c)
	return c, nil
}

func TestFromForm(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	f := Template()
	f.FirstName = "Peter"
	f.LastName = "Jones"
	f.Email = "peter.jones@example.com"
	f.PhoneNumber = "7700 900123"

	c := FromForm(f, now)
	assert.Equal(t, "Peter Jones", c.Name)
	assert.Equal(t, "GB 7700 900123", c.Phone)
	assert.Equal(t, StatusActive, c.Status)
	assert.Equal(t, "2024-03-10", c.CreatedAt)
	assert.Equal(t, DefaultLanguage, c.Language)
}

func TestCreate_AssignsID(t *testing.T) {
	repo := &mockCustomerRepo{}
	svc := NewService(repo)
	svc.newID = func() string { return "cust-fixed" }

	c, err := svc.Create(context.Background(), Customer{Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "cust-fixed", c.ID)
	assert.Equal(t, StatusActive, c.Status)
	assert.NotEmpty(t, c.CreatedAt)
}

func TestEditSchema_Validate(t *testing.T) {
	c := Customer{Name: "John Doe", Email: "not-an-email", Status: StatusActive}

	err := EditSchema.Validate(&c)
	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	msg, ok := verr.Issue("email")
	require.True(t, ok)
	assert.Equal(t, "Email must be a valid email address", msg)

	c.Email = "john.doe@example.com"
	require.NoError(t, EditSchema.Validate(&c))
}

func TestCreateSchema_Language(t *testing.T) {
	f := Template()
	f.FirstName = "Ann"
	f.Email = "ann@example.com"
	require.NoError(t, CreateSchema.Validate(&f))

	f.Language = "Klingon"
	require.Error(t, CreateSchema.Validate(&f))
}

func TestPatchApply(t *testing.T) {
	c := Customer{Name: "John", Email: "j@example.com"}
	inactive := StatusInactive
	Patch{Status: &inactive}.Apply(&c)

	assert.Equal(t, StatusInactive, c.Status)
	assert.Equal(t, "John", c.Name)
}
