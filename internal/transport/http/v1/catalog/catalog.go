package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/fastfood-uz/pos/internal/service/models/category"
	"github.com/fastfood-uz/pos/internal/service/models/order"
	"github.com/fastfood-uz/pos/internal/service/models/product"
)

type catalogService interface {
	GetProducts(ctx context.Context, filter product.QueryProductsModel) ([]product.Product, error)
	CreateProduct(ctx context.Context, p product.Product) (product.Product, error)
	UpdateProduct(ctx context.Context, p product.Product) (product.Product, error)
	GetCategories(ctx context.Context, onlyActive bool) ([]category.Category, error)
	CreateCategory(ctx context.Context, c category.Category) (category.Category, error)
}

type listProductsRequest struct {
	CategoryID int64 `schema:"categoryId"`
	OnlyActive bool  `schema:"onlyActive"`
}

func ListProducts(w http.ResponseWriter, r *http.Request, service catalogService) {
	var req listProductsRequest

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		slog.Error("error while decoding list products query", "error", err)
		http.Error(w, "invalid query parameters", http.StatusBadRequest)
		return
	}

	products, err := service.GetProducts(r.Context(), product.QueryProductsModel{
		CategoryID: req.CategoryID,
		OnlyActive: req.OnlyActive,
	})
	if err != nil {
		slog.Error("error while listing products", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		slog.Error("error while encoding list products response", "error", err)
	}
}

type createProductRequest struct {
	CategoryID  int64  `json:"categoryId" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	NameUz      string `json:"nameUz"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sortOrder"`
	IsActive    *bool  `json:"isActive"`
}

func (req *createProductRequest) toModel() product.Product {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return product.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		NameUz:      req.NameUz,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		SortOrder:   req.SortOrder,
		IsActive:    isActive,
	}
}

func CreateProduct(w http.ResponseWriter, r *http.Request, service catalogService) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("error while decoding create product request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := service.CreateProduct(r.Context(), req.toModel())
	if err != nil {
		if errors.Is(err, order.ErrReferenceNotFound) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		slog.Error("error while creating product", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("error while encoding create product response", "error", err)
	}
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, service catalogService) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("error while decoding update product request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	productModel := req.toModel()
	productModel.ID = id

	updated, err := service.UpdateProduct(r.Context(), productModel)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		slog.Error("error while updating product", "error", err, "product_id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("error while encoding update product response", "error", err)
	}
}

func ListCategories(w http.ResponseWriter, r *http.Request, service catalogService) {
	onlyActive := r.URL.Query().Get("onlyActive") == "true"

	categories, err := service.GetCategories(r.Context(), onlyActive)
	if err != nil {
		slog.Error("error while listing categories", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		slog.Error("error while encoding list categories response", "error", err)
	}
}

type createCategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	NameUz    string `json:"nameUz"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

func CreateCategory(w http.ResponseWriter, r *http.Request, service catalogService) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("error while decoding create category request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := service.CreateCategory(r.Context(), category.Category{
		Name:      req.Name,
		NameUz:    req.NameUz,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		IsActive:  isActive,
	})
	if err != nil {
		slog.Error("error while creating category", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("error while encoding create category response", "error", err)
	}
}
