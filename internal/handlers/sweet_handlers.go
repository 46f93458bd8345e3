package handlers

import (
	"net/http"

	"sweetshop/internal/common"
	"sweetshop/internal/services"

	"github.com/labstack/echo/v4"
)

// SweetHandlers handles HTTP requests for sweets and categories.
type SweetHandlers struct {
	sweetService services.SweetServiceInterface
	imageService services.ImageService
}

// NewSweetHandlers creates a new sweet handlers instance. imageService may
// be nil when object storage is not configured.
func NewSweetHandlers(sweetService services.SweetServiceInterface, imageService services.ImageService) *SweetHandlers {
	return &SweetHandlers{
		sweetService: sweetService,
		imageService: imageService,
	}
}

// sweetRequest covers create and update bodies. The legacy "stock" key is
// still accepted and wins over "quantity" when both are present.
type sweetRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
}

func (r *sweetRequest) quantity() *int {
	if r.Stock != nil {
		return r.Stock
	}
	return r.Quantity
}

// ListSweets handles GET /sweets with an optional category filter.
func (h *SweetHandlers) ListSweets(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	sweets, err := h.sweetService.ListSweets(ctx, userID, c.QueryParam("category"))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, sweets)
}

// GetSweet handles GET /sweets/:id.
func (h *SweetHandlers) GetSweet(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	sweet, err := h.sweetService.GetSweet(ctx, userID, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, sweet)
}

// CreateSweet handles POST /sweets.
func (h *SweetHandlers) CreateSweet(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	var req sweetRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Name == nil {
		return common.SendValidationError(c, "name", "name is required")
	}
	if req.Price == nil {
		return common.SendValidationError(c, "price", "price is required")
	}

	input := &services.SweetInput{
		Name:  *req.Name,
		Price: *req.Price,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if qty := req.quantity(); qty != nil {
		input.Quantity = *qty
	}
	if req.Category != nil {
		input.Category = *req.Category
	}
	if req.ImageURL != nil {
		input.ImageURL = *req.ImageURL
	}

	sweet, err := h.sweetService.CreateSweet(ctx, userID, input)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, sweet)
}

// UpdateSweet handles PUT /sweets/:id. Unspecified fields keep their
// previous value.
func (h *SweetHandlers) UpdateSweet(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req sweetRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	patch := &services.SweetPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.quantity(),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}

	sweet, err := h.sweetService.UpdateSweet(ctx, userID, id, patch)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, sweet)
}

// DeleteSweet handles DELETE /sweets/:id. Sweets referenced by order line
// items cannot be deleted.
func (h *SweetHandlers) DeleteSweet(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.sweetService.DeleteSweet(ctx, userID, id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Sweet deleted successfully",
	})
}

// UploadImage handles POST /sweets/:id/image (multipart field "image").
// The stored object's presigned URL becomes the sweet's image_url.
func (h *SweetHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	id, err := parseID(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if h.imageService == nil {
		return c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse("STORAGE_UNAVAILABLE", "Image storage is not configured", nil))
	}

	if _, err := h.sweetService.GetSweet(ctx, userID, id); err != nil {
		return common.SendError(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendClientError(c, "Cannot read uploaded file")
	}
	defer src.Close()

	url, err := h.imageService.UploadSweetImage(ctx, userID, id, file.Filename, file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		return common.SendError(c, err)
	}

	sweet, err := h.sweetService.UpdateSweet(ctx, userID, id, &services.SweetPatch{ImageURL: &url})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, sweet)
}

// GetCategories handles GET /categories.
func (h *SweetHandlers) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User ID required")
	}

	categories, err := h.sweetService.Categories(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}
