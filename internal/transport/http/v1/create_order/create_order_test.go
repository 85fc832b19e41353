package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfood-uz/pos/internal/service/models/order"
)

type fakeService struct {
	received order.Order
	result   order.Order
	err      error
}

func (s *fakeService) CreateOrder(_ context.Context, o order.Order) (order.Order, error) {
	s.received = o
	if s.err != nil {
		return order.Order{}, s.err
	}

	return s.result, nil
}

const validBody = `{
	"branchId": 1,
	"userId": 1,
	"paymentMethod": "CASH",
	"items": [{"productId": 10, "quantity": 2}]
}`

func post(t *testing.T, body string, service *fakeService) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateOrder(rec, req, service)

	return rec
}

func TestCreateOrderReturnsCreated(t *testing.T) {
	service := &fakeService{result: order.Order{ID: 1, OrderNumber: 1001, Status: order.StatusNew}}

	rec := post(t, validBody, service)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp order.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1001, resp.OrderNumber)
	assert.Equal(t, order.StatusNew, resp.Status)

	assert.Equal(t, order.TypeDineIn, service.received.Type, "empty type defaults to dine-in")
	assert.Equal(t, order.PaymentStatusPaid, service.received.PaymentStatus, "empty payment status defaults to paid")
}

func TestCreateOrderPassesItemNote(t *testing.T) {
	body := `{
		"branchId": 1,
		"userId": 1,
		"paymentMethod": "CASH",
		"items": [
			{"productId": 10, "quantity": 2, "note": "no onions"},
			{"productId": 11, "quantity": 1}
		]
	}`
	service := &fakeService{}

	rec := post(t, body, service)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, service.received.OrderItems, 2)
	assert.Equal(t, "no onions", service.received.OrderItems[0].Note)
	assert.Empty(t, service.received.OrderItems[1].Note)
}

func TestCreateOrderRejectsMalformedBody(t *testing.T) {
	rec := post(t, "{not json", &fakeService{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRejectsMissingFields(t *testing.T) {
	rec := post(t, `{"userId": 1}`, &fakeService{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRejectsZeroQuantity(t *testing.T) {
	body := `{
		"branchId": 1,
		"userId": 1,
		"paymentMethod": "CASH",
		"items": [{"productId": 10, "quantity": 0}]
	}`
	rec := post(t, body, &fakeService{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	body := `{
		"branchId": 1,
		"userId": 1,
		"paymentMethod": "CRYPTO",
		"items": [{"productId": 10, "quantity": 1}]
	}`
	rec := post(t, body, &fakeService{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderMapsEmptyOrderToBadRequest(t *testing.T) {
	rec := post(t, validBody, &fakeService{err: order.ErrEmptyOrder})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderMapsReferenceNotFound(t *testing.T) {
	rec := post(t, validBody, &fakeService{err: order.ErrReferenceNotFound})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateOrderMapsUnknownErrorToInternal(t *testing.T) {
	rec := post(t, validBody, &fakeService{err: assert.AnError})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
