package product

import (
	"context"
	"io"

	"github.com/tealeg/xlsx"
	"github.com/wichananm65/beverage-shop/internal/listing"
)

var exportHeaders = []string{
	"ID", "Code", "Slug", "Name", "Category", "Brand", "Packaging", "Price",
	"InStock", "IsActive", "Featured", "FeaturedOrder", "Badge", "CreatedAt", "UpdatedAt",
}

// Export writes every product, most recently updated first, as an xlsx
// workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	products, err := s.repo.List(ctx, Filter{Orders: []listing.Order{{Column: "updated_at", Desc: true}}})
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(deref(p.Code))
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(deref(p.CategoryName))
		row.AddCell().SetValue(BrandText(p))
		row.AddCell().SetValue(FormatPackaging(p))
		if p.Price != nil {
			row.AddCell().SetValue(*p.Price)
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetValue(p.InStock)
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.Featured)
		row.AddCell().SetValue(p.FeaturedOrder)
		row.AddCell().SetValue(deref(p.Badge))
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
