// internal/services/dashboard_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/mittirang/mittirang-backend/internal/models"
)

const recentActivityLimit = 10

type DashboardService struct {
	db       *gorm.DB
	products *ProductService
}

type DashboardStats struct {
	TotalProducts      int64             `json:"total_products"`
	DiscountedProducts int64             `json:"discounted_products"`
	AverageDiscount    float64           `json:"average_discount"` // percent, over discounted products
	MaxDiscount        int               `json:"max_discount"`
	WithoutImages      int64             `json:"without_images"`
	WithoutSizes       int64             `json:"without_sizes"`
	LastUpdatedAt      *time.Time        `json:"last_updated_at"`
	RecentActivity     []models.AuditLog `json:"recent_activity"`
}

func NewDashboardService(db *gorm.DB, products *ProductService) *DashboardService {
	return &DashboardService{
		db:       db,
		products: products,
	}
}

func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	products, err := s.products.AllProducts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalProducts: int64(len(products))}

	var discountSum int
	for _, p := range products {
		if d := p.GetDiscount(); d.Has {
			stats.DiscountedProducts++
			discountSum += d.Percent
			stats.MaxDiscount = max(stats.MaxDiscount, d.Percent)
		}
		if len(p.Images) == 0 {
			stats.WithoutImages++
		}
		if len(p.Sizes) == 0 {
			stats.WithoutSizes++
		}
		if stats.LastUpdatedAt == nil || p.UpdatedAt.After(*stats.LastUpdatedAt) {
			updated := p.UpdatedAt
			stats.LastUpdatedAt = &updated
		}
	}
	if stats.DiscountedProducts > 0 {
		avg := float64(discountSum) / float64(stats.DiscountedProducts)
		stats.AverageDiscount = math.Round(avg*10) / 10
	}

	stats.RecentActivity = []models.AuditLog{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").
		Limit(recentActivityLimit).Find(&stats.RecentActivity).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return stats, nil
}
