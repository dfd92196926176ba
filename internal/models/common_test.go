package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestImageList_ValueAndScan(t *testing.T) {
	v, err := ImageList{"a.jpg", "b,c.jpg"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"a.jpg","b,c.jpg"}`, v)

	v, err = ImageList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	var l ImageList
	require.NoError(t, l.Scan([]byte(`{"a.jpg","b,c.jpg"}`)))
	assert.Equal(t, ImageList{"a.jpg", "b,c.jpg"}, l)

	require.NoError(t, l.Scan(`["front.jpg", 3, "side.jpg"]`))
	assert.Equal(t, ImageList{"front.jpg", "side.jpg"}, l)

	for _, garbage := range []interface{}{nil, 42, "not a list", `{"unterminated`, "[oops"} {
		require.NoError(t, l.Scan(garbage))
		assert.NotNil(t, l)
		assert.Empty(t, l)
	}
}

func TestSizeList_ValueAndScan(t *testing.T) {
	v, err := SizeList{10, 6, 8, 6}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{6,8,10}", v)

	var s SizeList
	require.NoError(t, s.Scan("{10,8.5,8.5}"))
	assert.Equal(t, SizeList{8.5, 10}, s)

	require.NoError(t, s.Scan([]byte(`["8", 6, 6, "10"]`)))
	assert.Equal(t, SizeList{6, 8, 10}, s)

	require.NoError(t, s.Scan("seven"))
	assert.NotNil(t, s)
	assert.Empty(t, s)
}

func TestLists_MarshalEmptyAsArray(t *testing.T) {
	b, err := SizeList(nil).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	b, err = ImageList(nil).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestJSONB_Scan(t *testing.T) {
	var j JSONB
	require.NoError(t, j.Scan(`{"name":"Desert Boot"}`))
	assert.Equal(t, "Desert Boot", j["name"])

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Product{}, &AdminUser{}, &AuditLog{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestProduct_RoundTripSQLite(t *testing.T) {
	db := openTestDB(t)

	sp := 1500.0
	p := &Product{
		Name:         "Desert Boot",
		Images:       ImageList{"front.jpg", "side.jpg"},
		Price:        2000,
		SellingPrice: &sp,
		Sizes:        SizeList{10, 6, 8},
	}
	require.NoError(t, db.Create(p).Error)
	assert.NotZero(t, p.ID)

	var got Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, ImageList{"front.jpg", "side.jpg"}, got.Images)
	assert.Equal(t, SizeList{6, 8, 10}, got.Sizes)
	require.NotNil(t, got.SellingPrice)
	assert.Equal(t, 1500.0, *got.SellingPrice)
	assert.Equal(t, 25, got.GetDiscount().Percent)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestProduct_LegacyJSONColumns(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Exec(
		`INSERT INTO products (name, images, price, sizes, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"Old Loafer", `["a.jpg"]`, 999, `[9,"7",7,"9",5]`, "2024-01-01 00:00:00", "2024-01-01 00:00:00",
	).Error)

	var got Product
	require.NoError(t, db.Where("name = ?", "Old Loafer").First(&got).Error)
	assert.Equal(t, ImageList{"a.jpg"}, got.Images)
	assert.Equal(t, SizeList{5, 7, 9}, got.Sizes)
	assert.Nil(t, got.SellingPrice)
}

func TestAdminUser_Password(t *testing.T) {
	a := &AdminUser{Email: NormalizeEmail("  Admin@Mittirang.com ")}
	assert.Equal(t, "admin@mittirang.com", a.Email)

	require.NoError(t, a.SetPassword("admin123"))
	assert.NotEqual(t, "admin123", a.PasswordHash)
	assert.NoError(t, a.CheckPassword("admin123"))
	assert.Error(t, a.CheckPassword("wrong"))
}
