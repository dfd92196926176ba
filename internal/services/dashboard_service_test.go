package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mittirang/mittirang-backend/internal/models"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	products := NewProductService(db, &CacheService{})
	dashboard := NewDashboardService(db, products)

	empty, err := dashboard.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalProducts)
	assert.Nil(t, empty.LastUpdatedAt)
	assert.NotNil(t, empty.RecentActivity)

	for _, req := range []ProductRequest{
		{Name: "Desert Boot", Price: 2000.0, SellingPrice: 1500.0, Images: []interface{}{"a.jpg"}, Sizes: []interface{}{8.0}},
		{Name: "Loafer", Price: 1000.0, SellingPrice: 500.0},
		{Name: "Runner", Price: 900.0, Images: []interface{}{"r.jpg"}},
	} {
		_, err := products.CreateProduct(ctx, &req)
		require.NoError(t, err)
	}

	// A corrupt row written behind the service's back reads as "no discount".
	require.NoError(t, db.Create(&models.Product{Name: "Legacy", Price: 100, SellingPrice: ptr(300)}).Error)
	adminID := uint(1)
	require.NoError(t, db.Create(&models.AuditLog{AdminID: &adminID, Action: "POST /v1/admin/products", ResourceType: "products"}).Error)

	stats, err := dashboard.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.DiscountedProducts)
	assert.Equal(t, 37.5, stats.AverageDiscount)
	assert.Equal(t, 50, stats.MaxDiscount)
	assert.Equal(t, int64(2), stats.WithoutImages)
	assert.Equal(t, int64(3), stats.WithoutSizes)
	assert.NotNil(t, stats.LastUpdatedAt)
	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, "products", stats.RecentActivity[0].ResourceType)
}
