package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/beverage-shop/internal/packaging"
)

func ptrString(s string) *string { return &s }
func ptrInt(n int) *int          { return &n }
func ptrInt64(n int64) *int64    { return &n }
func ptrBool(b bool) *bool       { return &b }

func TestPriceText(t *testing.T) {
	assert.Equal(t, PriceOnRequest, PriceText(nil))
	assert.Equal(t, PriceOnRequest, PriceText(ptrInt64(0)))
	assert.Equal(t, "12.000đ", PriceText(ptrInt64(12000)))
	assert.Equal(t, "1.250.000đ", PriceText(ptrInt64(1250000)))
	assert.Equal(t, "500đ", PriceText(ptrInt64(500)))
}

func TestBadge(t *testing.T) {
	now := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	soldOut := Product{InStock: false, Badge: ptrString("Hot"), CreatedAt: now}
	require.NotNil(t, Badge(soldOut, now))
	assert.Equal(t, BadgeSoldOut, *Badge(soldOut, now))

	stored := Product{InStock: true, Badge: ptrString("Hot"), CreatedAt: now}
	assert.Equal(t, "Hot", *Badge(stored, now))

	fresh := Product{InStock: true, CreatedAt: now.Add(-13 * 24 * time.Hour)}
	require.NotNil(t, Badge(fresh, now))
	assert.Equal(t, BadgeNew, *Badge(fresh, now))

	old := Product{InStock: true, CreatedAt: now.Add(-15 * 24 * time.Hour)}
	assert.Nil(t, Badge(old, now))
}

func TestBrandText(t *testing.T) {
	assert.Equal(t, "Sabeco", BrandText(Product{BrandName: ptrString("Sabeco"), Brand: ptrString("old")}))
	assert.Equal(t, "old", BrandText(Product{Brand: ptrString("old")}))
	assert.Equal(t, "", BrandText(Product{}))
}

func TestFormatPackaging(t *testing.T) {
	p := Product{Descriptor: packaging.Descriptor{
		PackageType: ptrString("thung"),
		PackQty:     ptrInt(24),
		Unit:        ptrString("lon"),
		VolumeML:    ptrInt(330),
	}}
	assert.Equal(t, "1 thùng 24 lon 330ml", FormatPackaging(p))
}

func TestBuild(t *testing.T) {
	long := ""
	for i := 0; i < 130; i++ {
		long += "a"
	}

	p, err := Build(Input{
		Name:              "  Bia Sài Gòn  ",
		BrandID:           ptrString("b1"),
		Brand:             ptrString("legacy"),
		PackagingOverride: ptrString("   "),
		PackageType:       ptrString(""),
		Badge:             ptrString(" Hot "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bia Sài Gòn", p.Name)
	assert.Equal(t, "bia-sai-gon", p.Slug)
	assert.Nil(t, p.Brand)
	assert.Nil(t, p.Override)
	assert.Nil(t, p.PackageType)
	assert.Nil(t, p.Legacy)
	assert.True(t, p.InStock)
	assert.False(t, p.IsActive)
	assert.False(t, p.Featured)
	assert.Equal(t, 0, p.FeaturedOrder)
	require.NotNil(t, p.Badge)
	assert.Equal(t, "Hot", *p.Badge)

	p, err = Build(Input{Name: "x", Slug: long, Brand: ptrString("legacy"), InStock: ptrBool(false)})
	require.NoError(t, err)
	assert.Len(t, p.Slug, 120)
	assert.Equal(t, "legacy", *p.Brand)
	assert.False(t, p.InStock)

	_, err = Build(Input{Name: "   "})
	assert.ErrorIs(t, err, ErrMissingNameSlug)
}

func TestCleanSearch(t *testing.T) {
	assert.Equal(t, "bia100 sai gon", CleanSearch(" bia_100%,sai gon "))
}
