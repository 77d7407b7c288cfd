package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storewatch/internal/repo"
	"storewatch/pkg/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// StoreHandler handles store read endpoints
type StoreHandler struct {
	storeRepo *repo.StoreRepository
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeRepo *repo.StoreRepository) *StoreHandler {
	return &StoreHandler{storeRepo: storeRepo}
}

// StoreListResponse represents paginated store results
type StoreListResponse struct {
	Data    []models.Store `json:"data"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// List godoc
// @Summary List stores
// @Tags stores
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} StoreListResponse
// @Router /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	stores, total, err := h.storeRepo.List(perPage, (page-1)*perPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list stores"})
	}

	return c.JSON(http.StatusOK, StoreListResponse{
		Data:    stores,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

// GetByID godoc
// @Summary Get a store
// @Tags stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} models.Store
// @Failure 404 {object} map[string]string
// @Router /stores/{id} [get]
func (h *StoreHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid store ID"})
	}

	store, err := h.storeRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Store not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load store"})
	}

	return c.JSON(http.StatusOK, store)
}
