package branches

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fastfood-uz/pos/internal/service/models/branch"
)

type branchService interface {
	GetBranches(ctx context.Context) ([]branch.Branch, error)
	CreateBranch(ctx context.Context, b branch.Branch) (branch.Branch, error)
}

func ListBranches(w http.ResponseWriter, r *http.Request, service branchService) {
	found, err := service.GetBranches(r.Context())
	if err != nil {
		slog.Error("error while listing branches", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(found); err != nil {
		slog.Error("error while encoding list branches response", "error", err)
	}
}

type createBranchRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func CreateBranch(w http.ResponseWriter, r *http.Request, service branchService) {
	var req createBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("error while decoding create branch request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := service.CreateBranch(r.Context(), branch.Branch{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	})
	if err != nil {
		slog.Error("error while creating branch", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("error while encoding create branch response", "error", err)
	}
}
