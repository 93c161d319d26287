package listing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Sort keys accepted by the category page.
const (
	SortRelevance  = "lien-quan"
	SortNewest     = "moi-nhat"
	SortPriceAsc   = "gia-tang"
	SortPriceDesc  = "gia-giam"
	DefaultSortKey = SortRelevance
)

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// SortOrders returns the ordering for a sort key. Name is always the last
// tie-breaker; unknown keys sort by relevance.
func SortOrders(key string) []Order {
	var primary Order
	switch key {
	case SortNewest:
		primary = Order{Column: "created_at", Desc: true}
	case SortPriceAsc:
		primary = Order{Column: "price"}
	case SortPriceDesc:
		primary = Order{Column: "price", Desc: true}
	default:
		primary = Order{Column: "featured_order"}
	}
	return []Order{primary, {Column: "name"}}
}

// SortOption is a labelled choice for the sort select.
type SortOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var SortOptions = []SortOption{
	{Key: SortRelevance, Label: "Liên quan"},
	{Key: SortNewest, Label: "Mới nhất"},
	{Key: SortPriceAsc, Label: "Giá tăng dần"},
	{Key: SortPriceDesc, Label: "Giá giảm dần"},
}

// VolumeOptions are the volume/weight chips offered on the category page.
var VolumeOptions = []string{"180ml", "220ml", "330ml", "500ml", "1L", "200g", "400g", "900g"}

// DeliveryOption is a delivery filter chip.
type DeliveryOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var DeliveryOptions = []DeliveryOption{
	{Key: "ship", Label: "Giao 2H"},
	{Key: "pickup", Label: "Nhận tại cửa hàng"},
}

var volumePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(ml|l|g|kg)$`)

// VolumeFilter is a parsed volume token. Liquid volumes match volume_ml
// exactly; weights match the packaging text.
type VolumeFilter struct {
	ML   int
	Text string
}

// ParseVolume reads tokens such as "330ml", "1.5L" or "400g".
func ParseVolume(token string) (VolumeFilter, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	m := volumePattern.FindStringSubmatch(t)
	if m == nil {
		return VolumeFilter{}, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return VolumeFilter{}, false
	}
	switch m[2] {
	case "ml":
		return VolumeFilter{ML: int(math.Round(n))}, true
	case "l":
		return VolumeFilter{ML: int(math.Round(n * 1000))}, true
	default:
		return VolumeFilter{Text: t}, true
	}
}
