package staff

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fastfood-uz/pos/internal/service/models/user"
)

type staffService interface {
	GetStaff(ctx context.Context) ([]user.User, error)
	CreateStaff(ctx context.Context, u user.User) (user.User, error)
}

func ListStaff(w http.ResponseWriter, r *http.Request, service staffService) {
	found, err := service.GetStaff(r.Context())
	if err != nil {
		slog.Error("error while listing staff", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(found); err != nil {
		slog.Error("error while encoding list staff response", "error", err)
	}
}

type createStaffRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required"`
	BranchID int64  `json:"branchId"`
}

func CreateStaff(w http.ResponseWriter, r *http.Request, service staffService) {
	var req createStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("error while decoding create staff request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := service.CreateStaff(r.Context(), user.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     role,
		BranchID: req.BranchID,
		IsActive: true,
	})
	if err != nil {
		slog.Error("error while creating staff", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("error while encoding create staff response", "error", err)
	}
}
