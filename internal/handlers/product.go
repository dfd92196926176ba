// internal/handlers/product.go
package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mittirang/mittirang-backend/internal/catalog"
	"github.com/mittirang/mittirang-backend/internal/i18n"
	"github.com/mittirang/mittirang-backend/internal/services"
	"github.com/mittirang/mittirang-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /v1/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		logrus.WithError(err).Error("Failed to list products")
		utils.InternalErrorResponse(c, "")
		return
	}

	meta := gin.H{"sort": params.Sort}
	if params.Search != "" {
		meta["search"] = params.Search
		if result.Total == 0 {
			meta["message"] = i18n.T(lang, i18n.KeySearchNoResults)
		} else {
			meta["message"] = i18n.T(lang, i18n.KeySearchResultsFound, result.Total)
		}
	}

	utils.PaginatedResponse(c, *result, meta)
}

// GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// GET /v1/catalogue/options
func (h *ProductHandler) CatalogueOptions(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"sort_options": catalog.SortKeys(),
		"default_sort": catalog.SortNewest,
		"size_options": catalog.DefaultSizeOptions,
		"page_limit":   utils.DefaultPageLimit,
		"languages":    i18n.GetSupportedLanguages(),
	})
}

// POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /v1/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /v1/admin/uploads
func (h *ProductHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileRequired), nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(c.Request.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge), nil)
		case errors.Is(err, services.ErrFileTypeNotAllowed), errors.Is(err, services.ErrInvalidImage):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
		default:
			logrus.WithError(err).Error("Image upload failed")
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed))
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyFileUploadSuccess),
		"url":       result.URL,
		"key":       result.Key,
		"size":      result.Size,
		"mime_type": result.MimeType,
	})
}

// DELETE /v1/admin/uploads/*key
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	key := strings.TrimPrefix(c.Param("key"), "/")

	if err := h.storageService.DeleteFile(c.Request.Context(), key); err != nil {
		if errors.Is(err, services.ErrInvalidFileKey) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "key"), nil)
			return
		}
		logrus.WithError(err).WithField("key", key).Error("Image delete failed")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileDeleted),
		"key":     key,
	})
}

// DELETE /v1/admin/products/:id/images/:index
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "index"), nil)
		return
	}

	product, err := h.productService.RemoveImage(c.Request.Context(), id, index)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// POST /v1/admin/products/:id/sizes/:size
func (h *ProductHandler) ToggleSize(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	size, err := strconv.ParseFloat(c.Param("size"), 64)
	if err != nil || len(catalog.NormalizeSizes([]float64{size})) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "size"), nil)
		return
	}

	product, err := h.productService.ToggleSize(c.Request.Context(), id, size)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

func (h *ProductHandler) writeError(c *gin.Context, err error) {
	if details := utils.GetValidationErrors(err); len(details) > 0 {
		utils.ValidationErrorResponse(c, details)
		return
	}
	if errors.Is(err, services.ErrProductNotFound) {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	logrus.WithError(err).Error("Product request failed")
	utils.InternalErrorResponse(c, "")
}

// parseID reads the :id path parameter and answers 400 itself when it is
// not a positive integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationID), nil)
		return 0, false
	}
	return uint(id), true
}
