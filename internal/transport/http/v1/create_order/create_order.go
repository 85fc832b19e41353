package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fastfood-uz/pos/internal/service/models/order"
	"github.com/fastfood-uz/pos/internal/service/models/orderitem"
)

type createOrderService interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
}

type itemInCreateOrderRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note"`
}

type createOrderRequest struct {
	BranchID      int64                      `json:"branchId" validate:"required,gt=0"`
	UserID        int64                      `json:"userId" validate:"required,gt=0"`
	Type          string                     `json:"type"`
	PaymentMethod string                     `json:"paymentMethod" validate:"required"`
	PaymentStatus string                     `json:"paymentStatus"`
	Discount      int64                      `json:"discount" validate:"gte=0"`
	Note          string                     `json:"note"`
	Items         []itemInCreateOrderRequest `json:"items" validate:"required,dive"`
}

func (req *createOrderRequest) toModel() (order.Order, error) {
	orderType, err := order.ParseType(req.Type)
	if err != nil {
		return order.Order{}, err
	}

	paymentMethod, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return order.Order{}, err
	}

	paymentStatus, err := order.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]orderitem.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderitem.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Note:      item.Note,
		})
	}

	return order.Order{
		BranchID:      req.BranchID,
		UserID:        req.UserID,
		Type:          orderType,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		Discount:      req.Discount,
		Note:          req.Note,
		OrderItems:    items,
	}, nil
}

func CreateOrder(w http.ResponseWriter, r *http.Request, service createOrderService) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("error while decoding create order request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(req); err != nil {
		slog.Error("error while validating create order request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orderModel, err := req.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := service.CreateOrder(r.Context(), orderModel)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyOrder), errors.Is(err, order.ErrInvalidQuantity):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, order.ErrReferenceNotFound):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			slog.Error("error while creating order", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("error while encoding create order response", "error", err)
	}
}
