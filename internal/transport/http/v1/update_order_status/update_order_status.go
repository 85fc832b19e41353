package updateorderstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fastfood-uz/pos/internal/service/models/order"
)

type updateOrderStatusService interface {
	UpdateOrderStatus(ctx context.Context, id int64, expected *order.Status, next order.Status) (order.Order, error)
}

type updateOrderStatusRequest struct {
	Status         string `json:"status" validate:"required"`
	ExpectedStatus string `json:"expectedStatus"`
}

func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, service updateOrderStatusService) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("error while decoding update order status request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var expected *order.Status
	if req.ExpectedStatus != "" {
		parsed, err := order.ParseStatus(req.ExpectedStatus)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		expected = &parsed
	}

	updated, err := service.UpdateOrderStatus(r.Context(), id, expected, next)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, order.ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			slog.Error("error while updating order status", "error", err, "order_id", id)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("error while encoding update order status response", "error", err)
	}
}
