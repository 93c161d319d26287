package product

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/wichananm65/beverage-shop/internal/brand"
	"github.com/wichananm65/beverage-shop/internal/category"
	"github.com/wichananm65/beverage-shop/internal/listing"
	"github.com/wichananm65/beverage-shop/internal/productimage"
	"github.com/wichananm65/beverage-shop/internal/slug"
)

const (
	CatalogPageSize  = 12
	CategoryPageSize = 9
	AdminPageSize    = 5
	RelatedLimit     = 12
	maxSlugLength    = 120
)

var (
	ErrMissingNameSlug    = errors.New("Thiếu name/slug")
	ErrActiveRequiresCode = errors.New("Không thể bật hiển thị khi chưa có mã code (hãy chọn danh mục + thương hiệu trước).")
)

// Query codecs for each listing.
var (
	CatalogCodec  = listing.NewCodec("q", "page")
	CategoryCodec = listing.NewCodec("brand", "vol", "sort", "delivery", "page")
	AdminCodec    = listing.NewCodec("q", "category", "brand", "pageSize", "page")
)

var searchCleaner = strings.NewReplacer("%", "", "_", "", ",", " ")

// Service provides business logic for products.
type Service struct {
	repo       Repository
	categories category.Repository
	brands     brand.Repository
	images     *productimage.Service
	now        func() time.Time
}

func NewService(r Repository, categories category.Repository, brands brand.Repository, images *productimage.Service) *Service {
	return &Service{repo: r, categories: categories, brands: brands, images: images, now: time.Now}
}

// Facet is a filter chip or select option with the link that applies it.
type Facet struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// PageLink is one pagination control.
type PageLink struct {
	listing.PageItem
	Href    string `json:"href,omitempty"`
	Current bool   `json:"current,omitempty"`
}

// Pagination describes the current page of a listing.
type Pagination struct {
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	Links      []PageLink `json:"links"`
}

type CatalogPage struct {
	Query      string              `json:"q"`
	Categories []category.Category `json:"categories"`
	Items      []Card              `json:"items"`
	Pagination
}

type CategoryPage struct {
	Category   category.Category   `json:"category"`
	Categories []category.Category `json:"categories"`
	State      listing.State       `json:"state"`
	Brands     []Facet             `json:"brands"`
	Volumes    []Facet             `json:"volumes"`
	Sorts      []Facet             `json:"sorts"`
	Delivery   []Facet             `json:"delivery"`
	Items      []Card              `json:"items"`
	Pagination
}

type AdminPage struct {
	State       listing.State `json:"state"`
	PageSize    string        `json:"pageSize"`
	Items       []Product     `json:"items"`
	ShowingFrom int           `json:"showingFrom"`
	ShowingTo   int           `json:"showingTo"`
	Pagination
}

// CleanSearch removes characters that would widen an ILIKE pattern.
func CleanSearch(q string) string {
	return strings.TrimSpace(searchCleaner.Replace(q))
}

func paginate(codec listing.Codec, base string, state listing.State, total, page int, size listing.PageSize) Pagination {
	totalPages := listing.TotalPages(total, size)
	page = listing.ClampPage(page, totalPages)
	items := listing.PageItems(totalPages, page)
	links := make([]PageLink, 0, len(items))
	for _, it := range items {
		l := PageLink{PageItem: it}
		if !it.Ellipsis {
			l.Href = codec.Href(base, state, map[string]string{"page": strconv.Itoa(it.Page)})
			l.Current = it.Page == page
		}
		links = append(links, l)
	}
	return Pagination{Total: total, Page: page, TotalPages: totalPages, Links: links}
}

// page counts f, clamps the requested page and lists that window.
func (s *Service) page(ctx context.Context, f Filter, requested int, size listing.PageSize) ([]Product, int, int, error) {
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, 0, err
	}
	page := listing.ClampPage(requested, listing.TotalPages(total, size))
	f.Offset, f.Limit = listing.Window(page, size)
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, page, nil
}

// Cards attaches display images and texts to products.
func (s *Service) Cards(ctx context.Context, products []Product) ([]Card, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	images, err := s.images.ListForProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card{
			ID:          p.ID,
			Slug:        p.Slug,
			Name:        p.Name,
			Code:        p.Code,
			Description: deref(p.Description),
			Image:       productimage.DisplayURL(images[p.ID], deref(p.ImageURL)),
			InStock:     p.InStock,
			Badge:       Badge(p, now),
			BrandName:   BrandText(p),
			PackText:    FormatPackaging(p),
			PriceText:   PriceText(p.Price),
		})
	}
	return cards, nil
}

// Catalog lists every active product, newest first.
func (s *Service) Catalog(ctx context.Context, state listing.State) (CatalogPage, error) {
	q := CleanSearch(state.Get("q"))
	f := Filter{
		ActiveOnly: true,
		Search:     q,
		Orders:     []listing.Order{{Column: "created_at", Desc: true}},
	}
	size := listing.PageSize{N: CatalogPageSize}
	products, total, page, err := s.page(ctx, f, listing.ParsePage(state.Get("page")), size)
	if err != nil {
		return CatalogPage{}, err
	}
	cards, err := s.Cards(ctx, products)
	if err != nil {
		return CatalogPage{}, err
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return CatalogPage{}, err
	}
	return CatalogPage{
		Query:      q,
		Categories: cats,
		Items:      cards,
		Pagination: paginate(CatalogCodec, "/san-pham", state, total, page, size),
	}, nil
}

// Category lists the active products of one category with its filters.
func (s *Service) Category(ctx context.Context, categorySlug string, state listing.State) (CategoryPage, error) {
	cat, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return CategoryPage{}, err
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return CategoryPage{}, err
	}
	brands, err := s.brands.List(ctx)
	if err != nil {
		return CategoryPage{}, err
	}

	sortKey := state.Get("sort")
	if sortKey == "" {
		sortKey = listing.DefaultSortKey
	}
	f := Filter{
		ActiveOnly: true,
		CategoryID: cat.ID,
		Orders:     listing.SortOrders(sortKey),
	}
	if b := state.Get("brand"); b != "" {
		for _, br := range brands {
			if br.Slug == b {
				f.BrandID = br.ID
				break
			}
		}
	}
	if v, ok := listing.ParseVolume(state.Get("vol")); ok {
		f.Volume = &v
	}

	size := listing.PageSize{N: CategoryPageSize}
	products, total, page, err := s.page(ctx, f, listing.ParsePage(state.Get("page")), size)
	if err != nil {
		return CategoryPage{}, err
	}
	cards, err := s.Cards(ctx, products)
	if err != nil {
		return CategoryPage{}, err
	}

	base := "/san-pham/danh-muc/" + cat.Slug
	facet := func(key, value, label string) Facet {
		active := state.Get(key) == value
		next := value
		if active {
			next = ""
		}
		return Facet{Key: value, Label: label, Active: active, Href: CategoryCodec.Href(base, state, map[string]string{key: next})}
	}

	out := CategoryPage{
		Category:   cat,
		Categories: cats,
		State:      state,
		Items:      cards,
		Pagination: paginate(CategoryCodec, base, state, total, page, size),
	}
	for _, br := range brands {
		out.Brands = append(out.Brands, facet("brand", br.Slug, br.Name))
	}
	for _, v := range listing.VolumeOptions {
		out.Volumes = append(out.Volumes, facet("vol", v, v))
	}
	for _, d := range listing.DeliveryOptions {
		out.Delivery = append(out.Delivery, facet("delivery", d.Key, d.Label))
	}
	for _, o := range listing.SortOptions {
		out.Sorts = append(out.Sorts, Facet{
			Key:    o.Key,
			Label:  o.Label,
			Active: o.Key == sortKey,
			Href:   CategoryCodec.Href(base, state, map[string]string{"sort": o.Key}),
		})
	}
	return out, nil
}

// Detail returns an active product by slug with its gallery and related
// products from the same category.
func (s *Service) Detail(ctx context.Context, productSlug string) (Detail, error) {
	p, err := s.repo.GetBySlug(ctx, productSlug)
	if err != nil {
		return Detail{}, err
	}
	if !p.IsActive {
		return Detail{}, ErrNotFound
	}

	images, err := s.images.List(ctx, p.ID)
	if err != nil {
		return Detail{}, err
	}
	gallery := productimage.Gallery(images, deref(p.ImageURL))
	if len(gallery) == 0 {
		gallery = []string{productimage.Placeholder}
	}

	d := Detail{
		Product:   p,
		Images:    gallery,
		PackText:  FormatPackaging(p),
		PriceText: PriceText(p.Price),
		BrandText: BrandText(p),
		Related:   []Related{},
	}
	if p.CategoryID == nil {
		return d, nil
	}

	related, err := s.repo.List(ctx, Filter{
		ActiveOnly: true,
		CategoryID: *p.CategoryID,
		ExcludeID:  p.ID,
		Orders:     []listing.Order{{Column: "name"}},
		Limit:      RelatedLimit,
	})
	if err != nil {
		return Detail{}, err
	}
	ids := make([]string, 0, len(related))
	for _, r := range related {
		ids = append(ids, r.ID)
	}
	relImages, err := s.images.ListForProducts(ctx, ids)
	if err != nil {
		return Detail{}, err
	}
	for _, r := range related {
		d.Related = append(d.Related, Related{
			ID:    r.ID,
			Slug:  r.Slug,
			Name:  r.Name,
			Image: productimage.DisplayURL(relImages[r.ID], ""),
		})
	}
	return d, nil
}

// Featured returns up to limit active featured products by featured order.
func (s *Service) Featured(ctx context.Context, limit int) ([]Card, error) {
	products, err := s.repo.List(ctx, Filter{
		ActiveOnly:   true,
		FeaturedOnly: true,
		Orders:       []listing.Order{{Column: "featured_order"}, {Column: "name"}},
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}
	return s.Cards(ctx, products)
}

// AdminList returns the back-office product table, most recently updated
// first.
func (s *Service) AdminList(ctx context.Context, state listing.State) (AdminPage, error) {
	f := Filter{
		AdminSearch: strings.TrimSpace(state.Get("q")),
		CategoryID:  state.Get("category"),
		BrandID:     state.Get("brand"),
		Orders:      []listing.Order{{Column: "updated_at", Desc: true}},
	}
	size := listing.ParsePageSize(state.Get("pageSize"), AdminPageSize)
	products, total, page, err := s.page(ctx, f, listing.ParsePage(state.Get("page")), size)
	if err != nil {
		return AdminPage{}, err
	}

	out := AdminPage{
		State:      state,
		PageSize:   size.String(),
		Items:      products,
		Pagination: paginate(AdminCodec, "/admin", state, total, page, size),
	}
	if total > 0 {
		offset, _ := listing.Window(page, size)
		out.ShowingFrom = offset + 1
		out.ShowingTo = offset + len(products)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Build applies the back-office save rules to in.
func Build(in Input) (Product, error) {
	name := strings.TrimSpace(in.Name)
	sl := strings.TrimSpace(in.Slug)
	if sl == "" {
		sl = slug.Slugify(name)
	}
	if r := []rune(sl); len(r) > maxSlugLength {
		sl = string(r[:maxSlugLength])
	}
	if name == "" || sl == "" {
		return Product{}, ErrMissingNameSlug
	}

	p := Product{
		Slug:        sl,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  blankToNil(in.CategoryID),
		BrandID:     blankToNil(in.BrandID),
		ImageURL:    in.ImageURL,
		InStock:     boolOr(in.InStock, true),
		Featured:    boolOr(in.Featured, false),
		IsActive:    boolOr(in.IsActive, false),
		Badge:       trimToNil(in.Badge),
	}
	if in.FeaturedOrder != nil {
		p.FeaturedOrder = *in.FeaturedOrder
	}
	if p.BrandID == nil {
		p.Brand = in.Brand
	}
	p.Override = trimToNil(in.PackagingOverride)
	p.PackageType = blankToNil(in.PackageType)
	p.PackQty = in.PackQty
	p.Unit = blankToNil(in.Unit)
	p.VolumeML = in.VolumeML
	return p, nil
}

// Save creates a product when id is empty, otherwise updates it. A product
// can only be published once it has a code.
func (s *Service) Save(ctx context.Context, id string, in Input) (Product, error) {
	p, err := Build(in)
	if err != nil {
		return Product{}, err
	}
	if id == "" {
		if p.IsActive {
			return Product{}, ErrActiveRequiresCode
		}
		return s.repo.Create(ctx, p)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if p.IsActive && deref(existing.Code) == "" {
		return Product{}, ErrActiveRequiresCode
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
