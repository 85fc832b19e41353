package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/fastfood-uz/pos/internal/service/models/order"
)

type listOrdersService interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

type listOrdersRequest struct {
	Statuses []string `schema:"status"`
	BranchID int64    `schema:"branchId"`
	Limit    uint64   `schema:"limit"`
}

func (req *listOrdersRequest) toModel() (order.QueryOrdersModel, error) {
	statuses := make([]order.Status, 0, len(req.Statuses))
	for _, raw := range req.Statuses {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		statuses = append(statuses, status)
	}

	return order.QueryOrdersModel{
		Statuses: statuses,
		BranchID: req.BranchID,
		Limit:    int(req.Limit),
	}, nil
}

func ListOrders(w http.ResponseWriter, r *http.Request, service listOrdersService) {
	var req listOrdersRequest

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		slog.Error("error while decoding list orders query", "error", err)
		http.Error(w, "invalid query parameters", http.StatusBadRequest)
		return
	}

	filter, err := req.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		slog.Error("error while listing orders", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("error while encoding list orders response", "error", err)
	}
}
