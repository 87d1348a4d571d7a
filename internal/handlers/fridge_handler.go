package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fridge-service/internal/domain"
	"fridge-service/internal/inventory"
	"fridge-service/internal/view"
	apperrors "fridge-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FridgeStore is the part of inventory.Store the HTTP layer needs
type FridgeStore interface {
	Add(ctx context.Context, draft domain.Draft) (domain.Item, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) bool
	SoftDelete(ctx context.Context, id uuid.UUID) bool
	Restore(ctx context.Context, id uuid.UUID) bool
	Purge(ctx context.Context, id uuid.UUID) bool
	Snapshot() domain.Collection
	Get(id uuid.UUID) (domain.Item, error)
	Now() time.Time
	Status() inventory.Status
}

type FridgeHandler struct {
	logger *zap.Logger
	store  FridgeStore
}

func NewFridgeHandler(logger *zap.Logger, store FridgeStore) *FridgeHandler {
	return &FridgeHandler{
		logger: logger,
		store:  store,
	}
}

// RegisterRoutes mounts the fridge endpoints on rg
func (h *FridgeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/summary", h.Summary)

	items := rg.Group("/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.POST("/:id/adjust", h.AdjustQuantity)
		items.DELETE("/:id", h.SoftDelete)
		items.POST("/:id/restore", h.Restore)
	}

	rg.DELETE("/trash/:id", h.Purge)
}

// Health handles GET /api/v1/health
// @Summary      Service health
// @Description  Reports item count and the outcome of the last save. Status is "degraded" while saves are failing.
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *FridgeHandler) Health(c *gin.Context) {
	st := h.store.Status()
	resp := HealthResponse{
		Status:        "ok",
		Service:       "fridge-service",
		Items:         st.Items,
		LastSaveError: st.LastSaveError,
	}
	if !st.LastSavedAt.IsZero() {
		resp.LastSavedAt = st.LastSavedAt.Format(time.RFC3339)
	}
	if st.LastSaveError != "" {
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}

// ListItems handles GET /api/v1/items?category=&q=&trash=
// @Summary      List items
// @Description  Active items (or the trash) filtered by category and a name substring, ordered newest first.
// @Tags         items
// @Produce      json
// @Param        category  query     string  false  "MEAT, VEGETABLE, FRUIT, SEAFOOD, OTHER or ALL"  default(ALL)
// @Param        q         query     string  false  "Case-insensitive name substring"
// @Param        trash     query     bool    false  "List the trash instead of active items"
// @Success      200       {object}  ItemListResponse
// @Failure      400       {object}  apperrors.StandardError  "Unknown category or bad trash flag"
// @Router       /items [get]
func (h *FridgeHandler) ListItems(c *gin.Context) {
	category, err := domain.ParseCategoryFilter(c.Query("category"))
	if err != nil {
		_ = c.Error(apperrors.NewInvalidCategory(c.Query("category")))
		return
	}

	trash := false
	if raw := c.Query("trash"); raw != "" {
		trash, err = strconv.ParseBool(raw)
		if err != nil {
			_ = c.Error(apperrors.NewInvalidRequest("invalid trash flag", "Trash: "+raw))
			return
		}
	}

	filter := view.Filter{
		Category: category,
		Search:   c.Query("q"),
		Trash:    trash,
	}
	projected := view.Project(h.store.Snapshot(), filter)
	items := toItemResponses(view.PresentAll(projected, h.store.Now()))

	c.JSON(http.StatusOK, ItemListResponse{Items: items, Count: len(items)})
}

// GetItem handles GET /api/v1/items/:id
// @Summary      Get item by ID
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID (UUID)"
// @Success      200  {object}  ItemResponse
// @Failure      400  {object}  apperrors.StandardError  "Malformed ID"
// @Failure      404  {object}  apperrors.StandardError  "Item not found"
// @Router       /items/{id} [get]
func (h *FridgeHandler) GetItem(c *gin.Context) {
	item, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.present(item))
}

// CreateItem handles POST /api/v1/items
// @Summary      Add item
// @Description  Puts a new item at the front of the fridge with today's date.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for tracking and idempotent replay. Generated when absent."
// @Param        request       body      CreateItemRequest  true  "Item to add"
// @Success      201           {object}  ItemResponse
// @Failure      400           {object}  apperrors.StandardError  "Missing name, quantity below 1 or unknown category"
// @Failure      500           {object}  apperrors.StandardError
// @Router       /items [post]
func (h *FridgeHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		_ = c.Error(bindingError(err))
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		_ = c.Error(apperrors.NewInvalidCategory(req.Category))
		return
	}

	item, err := h.store.Add(c.Request.Context(), domain.Draft{
		Name:     strings.TrimSpace(req.Name),
		Quantity: req.Quantity,
		Unit:     strings.TrimSpace(req.Unit),
		Category: category,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidName):
		_ = c.Error(apperrors.NewValidationError("name is required", "name"))
		return
	case errors.Is(err, domain.ErrInvalidQuantity):
		_ = c.Error(apperrors.NewValidationError(err.Error(), "quantity"))
		return
	}
	if err != nil {
		h.logger.Error("Failed to add item", zap.Error(err))
		_ = c.Error(apperrors.NewInternalError("failed to add item", err))
		return
	}

	h.logger.Info("Item added",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
		zap.String("category", string(item.Category)),
	)
	c.JSON(http.StatusCreated, h.present(item))
}

// AdjustQuantity handles POST /api/v1/items/:id/adjust. A rejected adjustment
// is not an error: the response carries applied=false and the unchanged item.
// @Summary      Adjust quantity
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for tracking and idempotent replay. Generated when absent."
// @Param        id            path      string                 true  "Item ID (UUID)"
// @Param        request       body      AdjustQuantityRequest  true  "Signed change"
// @Success      200           {object}  AdjustQuantityResponse
// @Failure      400           {object}  apperrors.StandardError  "Malformed ID or missing delta"
// @Failure      404           {object}  apperrors.StandardError  "Item not found"
// @Router       /items/{id}/adjust [post]
func (h *FridgeHandler) AdjustQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	applied := h.store.AdjustQuantity(c.Request.Context(), id, *req.Delta)
	item, err := h.store.Get(id)
	if err != nil {
		_ = c.Error(notFoundError(id, err))
		return
	}

	c.JSON(http.StatusOK, AdjustQuantityResponse{
		Applied: applied,
		Item:    h.present(item),
	})
}

// SoftDelete handles DELETE /api/v1/items/:id
// @Summary      Move item to trash
// @Tags         items
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for tracking and idempotent replay. Generated when absent."
// @Param        id            path      string  true  "Item ID (UUID)"
// @Success      200           {object}  ItemResponse
// @Failure      400           {object}  apperrors.StandardError  "Malformed ID"
// @Failure      404           {object}  apperrors.StandardError  "Item not found"
// @Router       /items/{id} [delete]
func (h *FridgeHandler) SoftDelete(c *gin.Context) {
	h.toggleTrash(c, h.store.SoftDelete)
}

// Restore handles POST /api/v1/items/:id/restore
// @Summary      Restore item from trash
// @Tags         items
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for tracking and idempotent replay. Generated when absent."
// @Param        id            path      string  true  "Item ID (UUID)"
// @Success      200           {object}  ItemResponse
// @Failure      400           {object}  apperrors.StandardError  "Malformed ID"
// @Failure      404           {object}  apperrors.StandardError  "Item not found"
// @Router       /items/{id}/restore [post]
func (h *FridgeHandler) Restore(c *gin.Context) {
	h.toggleTrash(c, h.store.Restore)
}

func (h *FridgeHandler) toggleTrash(c *gin.Context, op func(context.Context, uuid.UUID) bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !op(c.Request.Context(), id) {
		_ = c.Error(apperrors.NewItemNotFound(id.String()))
		return
	}

	item, err := h.store.Get(id)
	if err != nil {
		_ = c.Error(notFoundError(id, err))
		return
	}
	c.JSON(http.StatusOK, h.present(item))
}

// Purge handles DELETE /api/v1/trash/:id. Only trashed items can be purged.
// @Summary      Delete item permanently
// @Tags         trash
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for tracking and idempotent replay. Generated when absent."
// @Param        id            path      string  true  "Item ID (UUID)"
// @Success      200           {object}  PurgeResponse
// @Failure      400           {object}  apperrors.StandardError  "Malformed ID"
// @Failure      404           {object}  apperrors.StandardError  "Item not found"
// @Failure      409           {object}  apperrors.StandardError  "Item is not in the trash"
// @Router       /trash/{id} [delete]
func (h *FridgeHandler) Purge(c *gin.Context) {
	item, ok := h.lookup(c)
	if !ok {
		return
	}
	if !item.IsDeleted {
		_ = c.Error(apperrors.NewInvalidOperation("item is not in the trash", "Item ID: "+item.ID.String()))
		return
	}
	if !h.store.Purge(c.Request.Context(), item.ID) {
		// purged concurrently
		_ = c.Error(apperrors.NewItemNotFound(item.ID.String()))
		return
	}

	h.logger.Info("Item purged", zap.String("item_id", item.ID.String()), zap.String("name", item.Name))
	c.JSON(http.StatusOK, PurgeResponse{ID: item.ID.String(), Message: "item purged"})
}

// Summary handles GET /api/v1/summary
// @Summary      Fridge summary
// @Description  Counts by freshness and category plus the oldest active items.
// @Tags         system
// @Produce      json
// @Success      200  {object}  SummaryResponse
// @Router       /summary [get]
func (h *FridgeHandler) Summary(c *gin.Context) {
	summary := view.Summarize(h.store.Snapshot(), h.store.Now())
	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

func (h *FridgeHandler) lookup(c *gin.Context) (domain.Item, bool) {
	id, ok := parseID(c)
	if !ok {
		return domain.Item{}, false
	}
	item, err := h.store.Get(id)
	if err != nil {
		_ = c.Error(notFoundError(id, err))
		return domain.Item{}, false
	}
	return item, true
}

func notFoundError(id uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrItemNotFound) {
		return apperrors.NewItemNotFound(id.String())
	}
	return apperrors.NewInternalError("failed to read item", err)
}

func (h *FridgeHandler) present(item domain.Item) ItemResponse {
	return toItemResponse(view.Present(item, h.store.Now()))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperrors.NewInvalidRequest("invalid item id", "Item ID: "+c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

// bindingError maps gin binding failures to a StandardError naming the first
// offending field
func bindingError(err error) *apperrors.StandardError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return apperrors.NewValidationError(field+" is required", field)
		case "min":
			return apperrors.NewValidationError(field+" must be at least "+fe.Param(), field)
		default:
			return apperrors.NewValidationError(field+" is invalid", field)
		}
	}
	return apperrors.NewInvalidRequest("invalid request body", err.Error())
}
