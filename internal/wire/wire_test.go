package wire

import (
	"testing"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/backoffice/internal/domain/customer"
	"github.com/xenking/backoffice/internal/domain/order"
	"github.com/xenking/backoffice/internal/domain/product"
)

func TestDecodeOrder(t *testing.T) {
	const doc = `{
		"id": "ORD-001",
		"customer": {"id": "cust-1", "name": "John Doe", "email": "john.doe@example.com", "avatar": "/images/avatars/1.png"},
		"orderDate": "2024-05-20",
		"totalAmount": 125.5,
		"status": "Delivered",
		"itemCount": 3,
		"paymentMethod": "Credit Card",
		"items": [{"productId": "1", "productName": "Watch", "quantity": 1, "price": "$690"}]
	}`

	o, err := Unmarshal([]byte(doc), DecodeOrder)
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", o.ID)
	assert.Equal(t, "John Doe", o.Customer.Name)
	assert.True(t, decimal.RequireFromString("125.5").Equal(o.TotalAmount))
	assert.Equal(t, order.StatusDelivered, o.Status)
	assert.Equal(t, 3, o.ItemCount)
	require.Len(t, o.Items, 1)
	assert.True(t, decimal.NewFromInt(690).Equal(o.Items[0].Price))

	// Encoding and decoding again yields the same record.
	again, err := Unmarshal(Marshal(o, EncodeOrder), DecodeOrder)
	require.NoError(t, err)
	assert.Equal(t, o.ID, again.ID)
	assert.Equal(t, o.Customer, again.Customer)
	assert.True(t, o.TotalAmount.Equal(again.TotalAmount))
}

func TestDecodeOrder_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"UnknownField":  `{"id":"ORD-1","color":"red"}`,
		"BadStatus":     `{"status":"Lost"}`,
		"BadAmount":     `{"totalAmount":"ten"}`,
		"WrongType":     `{"itemCount":"3"}`,
		"NotAnObject":   `[1,2]`,
		"BadCustomer":   `{"customer":{"age":3}}`,
		"TruncatedJSON": `{"id":`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(doc), DecodeOrder)
			require.Error(t, err)
		})
	}

	_, err := Unmarshal([]byte(`{"color":"red"}`), DecodeOrder)
	var uerr *UnknownFieldError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "color", uerr.Field)
}

func TestOrderPatch(t *testing.T) {
	p, err := Unmarshal([]byte(`{"status":"Shipped","totalAmount":null}`), DecodeOrderPatch)
	require.NoError(t, err)
	require.NotNil(t, p.Status)
	assert.Equal(t, order.StatusShipped, *p.Status)
	require.NotNil(t, p.TotalAmount)
	assert.True(t, p.TotalAmount.IsZero())
	assert.Nil(t, p.ItemCount)

	shipped := order.StatusShipped
	count := 2
	doc := Marshal(order.Patch{Status: &shipped, ItemCount: &count}, EncodeOrderPatch)
	assert.JSONEq(t, `{"itemCount":2,"status":"Shipped"}`, string(doc))
}

func TestProduct(t *testing.T) {
	p, err := Unmarshal([]byte(`{
		"id": "3",
		"image": "/images/products/sony.png",
		"name": "Sony WH-1000XM4",
		"category": "Electronics",
		"price": "$1,299",
		"stock": 25,
		"status": "Active",
		"rating": 4.8
	}`), DecodeProduct)
	require.NoError(t, err)
	assert.Equal(t, product.Version1, p.SchemaVersion)
	assert.True(t, decimal.NewFromInt(1299).Equal(p.Price))
	assert.Equal(t, 4.8, p.Rating)

	doc := string(Marshal(p, EncodeProduct))
	assert.Contains(t, doc, `"price":"$1299"`)
	assert.NotContains(t, doc, `"mrp"`)

	rating := 9.0
	patch, err := Unmarshal(Marshal(product.Patch{Rating: &rating}, EncodeProductPatch), DecodeProductPatch)
	require.NoError(t, err)
	require.NotNil(t, patch.Rating)
	assert.Equal(t, 9.0, *patch.Rating)
	assert.Nil(t, patch.Price)
}

func TestCustomer(t *testing.T) {
	c := customer.Customer{
		ID:              "cust-1",
		Name:            "John Doe",
		Email:           "john.doe@example.com",
		TotalOrders:     5,
		Status:          customer.StatusActive,
		CreatedAt:       "2023-01-15",
		MarketingEmails: true,
	}
	again, err := Unmarshal(Marshal(c, EncodeCustomer), DecodeCustomer)
	require.NoError(t, err)
	assert.Equal(t, c, again)

	_, err = Unmarshal([]byte(`{"status":"Banned"}`), DecodeCustomerPatch)
	require.Error(t, err)
}

func TestLists(t *testing.T) {
	orders := []order.Order{{ID: "ORD-1", Status: order.StatusPending}, {ID: "ORD-2", Status: order.StatusShipped}}
	doc := Marshal(orders, ListEncoder(EncodeOrder))

	got, err := Unmarshal(doc, ListDecoder(DecodeOrder))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ORD-2", got[1].ID)

	empty, err := Unmarshal([]byte(`[]`), ListDecoder(DecodeOrder))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestError(t *testing.T) {
	doc := Marshal(Error{Code: 404, Message: "order not found"}, EncodeError)
	assert.JSONEq(t, `{"code":404,"message":"order not found"}`, string(doc))

	e, err := DecodeError(jx.DecodeStr(`{"code":422,"message":"invalid","issues":{"name":"Name is required"},"trace":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, 422, e.Code)
	assert.Equal(t, "Name is required", e.Issues["name"])
}
