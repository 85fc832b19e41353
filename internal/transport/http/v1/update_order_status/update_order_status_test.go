package updateorderstatus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfood-uz/pos/internal/service/models/order"
)

type fakeService struct {
	id       int64
	expected *order.Status
	next     order.Status
	result   order.Order
	err      error
}

func (s *fakeService) UpdateOrderStatus(
	_ context.Context,
	id int64,
	expected *order.Status,
	next order.Status,
) (order.Order, error) {
	s.id = id
	s.expected = expected
	s.next = next
	if s.err != nil {
		return order.Order{}, s.err
	}

	return s.result, nil
}

func patch(t *testing.T, id, body string, service *fakeService) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+id+"/status", strings.NewReader(body))

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	UpdateOrderStatus(rec, req, service)

	return rec
}

func TestUpdateOrderStatusOK(t *testing.T) {
	service := &fakeService{result: order.Order{ID: 5, Status: order.StatusPreparing}}

	rec := patch(t, "5", `{"status": "PREPARING", "expectedStatus": "NEW"}`, service)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), service.id)
	assert.Equal(t, order.StatusPreparing, service.next)
	require.NotNil(t, service.expected)
	assert.Equal(t, order.StatusNew, *service.expected)
}

func TestUpdateOrderStatusWithoutExpected(t *testing.T) {
	service := &fakeService{result: order.Order{ID: 5, Status: order.StatusCancelled}}

	rec := patch(t, "5", `{"status": "CANCELLED"}`, service)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, service.expected)
}

func TestUpdateOrderStatusBadID(t *testing.T) {
	rec := patch(t, "abc", `{"status": "PREPARING"}`, &fakeService{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusUnknownStatus(t *testing.T) {
	rec := patch(t, "5", `{"status": "DONE"}`, &fakeService{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusMissingStatus(t *testing.T) {
	rec := patch(t, "5", `{}`, &fakeService{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusMapsNotFound(t *testing.T) {
	rec := patch(t, "5", `{"status": "PREPARING"}`, &fakeService{err: order.ErrNotFound})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatusMapsConflict(t *testing.T) {
	rec := patch(t, "5", `{"status": "PREPARING"}`, &fakeService{err: order.ErrInvalidTransition})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateOrderStatusMapsUnknownErrorToInternal(t *testing.T) {
	rec := patch(t, "5", `{"status": "PREPARING"}`, &fakeService{err: assert.AnError})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
