// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mittirang/mittirang-backend/internal/catalog"
	"github.com/mittirang/mittirang-backend/internal/database"
	"github.com/mittirang/mittirang-backend/internal/metrics"
	"github.com/mittirang/mittirang-backend/internal/models"
	"github.com/mittirang/mittirang-backend/internal/utils"
)

const (
	productsCacheKey     = "products:all"
	productsCachePattern = "products:*"
)

type ProductService struct {
	db    *gorm.DB
	cache *CacheService
}

// ProductRequest is the admin form payload. Prices, images and sizes are
// loosely typed on purpose: the catalog rules coerce them.
type ProductRequest struct {
	Name             string      `json:"name" validate:"max=255"`
	ShortDescription string      `json:"short_description" validate:"max=1000"`
	Description      string      `json:"description" validate:"max=20000"`
	Images           interface{} `json:"images"`
	FlipkartLink     string      `json:"flipkart_link" validate:"max=2048"`
	AmazonLink       string      `json:"amazon_link" validate:"max=2048"`
	Price            interface{} `json:"price"`
	SellingPrice     interface{} `json:"sellingprice"`
	Sizes            interface{} `json:"sizes"`
}

func (r *ProductRequest) input() catalog.ProductInput {
	return catalog.ProductInput{
		Name:             r.Name,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Images:           r.Images,
		FlipkartLink:     r.FlipkartLink,
		AmazonLink:       r.AmazonLink,
		Price:            r.Price,
		SellingPrice:     r.SellingPrice,
		Sizes:            r.Sizes,
	}
}

// ProductView is a product annotated for display.
type ProductView struct {
	models.Product
	Discount       catalog.Discount `json:"discount"`
	PrimaryImage   string           `json:"primary_image"`
	EffectivePrice float64          `json:"effective_price"`
}

func NewProductView(p models.Product) ProductView {
	if p.Images == nil {
		p.Images = models.ImageList{}
	}
	if p.Sizes == nil {
		p.Sizes = models.SizeList{}
	}
	effective, _ := catalog.EffectivePrice(p.Price, p.SellingPrice)
	return ProductView{
		Product:        p,
		Discount:       p.GetDiscount(),
		PrimaryImage:   catalog.PrimaryImage(p.Images),
		EffectivePrice: effective,
	}
}

func NewProductService(db *gorm.DB, cache *CacheService) *ProductService {
	return &ProductService{
		db:    db,
		cache: cache,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *ProductRequest) (*ProductView, error) {
	normalized, err := s.validate(req)
	if err != nil {
		metrics.ProductWrites.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}

	product := &models.Product{}
	product.Apply(normalized)

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		metrics.ProductWrites.WithLabelValues("create", "error").Inc()
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(ctx)
	metrics.ProductWrites.WithLabelValues("create", "ok").Inc()

	view := NewProductView(*product)
	return &view, nil
}

// UpdateProduct replaces every editable field of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req *ProductRequest) (*ProductView, error) {
	normalized, err := s.validate(req)
	if err != nil {
		metrics.ProductWrites.WithLabelValues("update", "invalid").Inc()
		return nil, err
	}

	product, err := s.findProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			metrics.ProductWrites.WithLabelValues("update", "not_found").Inc()
		}
		return nil, err
	}

	product.Apply(normalized)
	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		metrics.ProductWrites.WithLabelValues("update", "error").Inc()
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidate(ctx)
	metrics.ProductWrites.WithLabelValues("update", "ok").Inc()

	view := NewProductView(*product)
	return &view, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		metrics.ProductWrites.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		metrics.ProductWrites.WithLabelValues("delete", "not_found").Inc()
		return ErrProductNotFound
	}

	s.invalidate(ctx)
	metrics.ProductWrites.WithLabelValues("delete", "ok").Inc()
	return nil
}

// RemoveImage drops the image at index from a product's gallery. An index
// out of range leaves the gallery as it is.
func (s *ProductService) RemoveImage(ctx context.Context, id uint, index int) (*ProductView, error) {
	return s.patch(ctx, id, "remove_image", func(p *models.Product) {
		p.Images = catalog.RemoveImageAt(p.Images, index)
	})
}

// ToggleSize adds size to a product's size set, or removes it when present.
func (s *ProductService) ToggleSize(ctx context.Context, id uint, size float64) (*ProductView, error) {
	return s.patch(ctx, id, "toggle_size", func(p *models.Product) {
		p.Sizes = catalog.ToggleSize(p.Sizes, size)
	})
}

func (s *ProductService) patch(ctx context.Context, id uint, operation string, change func(*models.Product)) (*ProductView, error) {
	var product models.Product
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}
		change(&product)
		return tx.Save(&product).Error
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrProductNotFound) {
			outcome = "not_found"
		}
		metrics.ProductWrites.WithLabelValues(operation, outcome).Inc()
		return nil, err
	}

	s.invalidate(ctx)
	metrics.ProductWrites.WithLabelValues(operation, "ok").Inc()

	view := NewProductView(product)
	return &view, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*ProductView, error) {
	key := "products:" + strconv.FormatUint(uint64(id), 10)

	var cached models.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Product cache read failed")
	} else if hit {
		view := NewProductView(cached)
		return &view, nil
	}

	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, product); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Product cache write failed")
	}

	view := NewProductView(*product)
	return &view, nil
}

// ListProducts filters, orders and pages the whole catalogue in memory.
func (s *ProductService) ListProducts(ctx context.Context, params utils.PaginationParams) (*utils.PaginationResult, error) {
	products, err := s.AllProducts(ctx)
	if err != nil {
		return nil, err
	}

	arranged := catalog.Arrange(products, models.Product.Entry, catalog.Query{
		Search: params.Search,
		Sort:   params.Sort,
	})

	page := utils.Paginate(arranged, params)
	views := make([]ProductView, len(page))
	for i, p := range page {
		views[i] = NewProductView(p)
	}

	result := utils.CreatePaginationResult(views, int64(len(arranged)), params)
	return &result, nil
}

// AllProducts returns every product, newest first, reading through the cache.
func (s *ProductService) AllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product

	if hit, err := s.cache.Get(ctx, productsCacheKey, &products); err != nil {
		logrus.WithError(err).Warn("Product list cache read failed")
	} else if hit {
		return products, nil
	}

	defer metrics.ObserveDBQuery("select", time.Now())
	products = nil
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.cache.Set(ctx, productsCacheKey, products); err != nil {
		logrus.WithError(err).Warn("Product list cache write failed")
	}
	return products, nil
}

func (s *ProductService) validate(req *ProductRequest) (catalog.NormalizedProduct, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return catalog.NormalizedProduct{}, fmt.Errorf("validation failed: %w", err)
	}
	return catalog.ValidateProduct(req.input())
}

func (s *ProductService) findProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, productsCachePattern); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate product cache")
	}
}
