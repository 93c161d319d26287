package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryCodec = NewCodec("brand", "vol", "sort", "delivery", "page")

func TestEncodeOmitsEmptyKeys(t *testing.T) {
	qs := categoryCodec.Encode(State{"brand": "sabeco", "vol": "", "sort": "gia-tang", "other": "x"})
	assert.Equal(t, "brand=sabeco&sort=gia-tang", qs)
}

func TestDecodeTakesFirstValue(t *testing.T) {
	values := url.Values{"brand": {"a", "b"}, "vol": {""}, "unknown": {"z"}}
	s := categoryCodec.Decode(values)
	assert.Equal(t, State{"brand": "a"}, s)
}

func TestRoundTrip(t *testing.T) {
	states := []State{
		{},
		{"brand": "heineken"},
		{"brand": "tiger", "vol": "330ml", "sort": "moi-nhat", "page": "3"},
		{"delivery": "ship", "vol": "1.5l"},
		{"brand": "a&b=c", "sort": "gia giam"},
	}
	for _, s := range states {
		got := categoryCodec.DecodeQuery(categoryCodec.Encode(s))
		assert.Equal(t, s, got)
	}
}

func TestPatchKeepsOtherKeys(t *testing.T) {
	base := State{"brand": "tiger", "sort": "gia-tang", "page": "4"}
	out := categoryCodec.Patch(base, map[string]string{"brand": "", "vol": "500ml"})
	assert.Equal(t, State{"sort": "gia-tang", "page": "4", "vol": "500ml"}, out)
	assert.Equal(t, "tiger", base["brand"], "base must not be mutated")
}

func TestHrefResetsPage(t *testing.T) {
	base := State{"brand": "tiger", "sort": "gia-tang", "page": "4"}
	href := categoryCodec.Href("/san-pham/danh-muc/bia", base, map[string]string{"vol": "330ml"})
	assert.Equal(t, "/san-pham/danh-muc/bia?brand=tiger&page=1&sort=gia-tang&vol=330ml", href)

	assert.Equal(t, "/x?page=2", categoryCodec.Href("/x", State{}, map[string]string{"page": "2"}))
}

func TestPageClamp(t *testing.T) {
	size := ParsePageSize("5", 10)
	total := TotalPages(23, size)
	require.Equal(t, 5, total)
	assert.Equal(t, 5, ClampPage(9, total))

	all := ParsePageSize(PageSizeAll, 10)
	assert.True(t, all.All)
	assert.Equal(t, 1, ClampPage(9, TotalPages(23, all)))
}

func TestTotalPagesEdges(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, PageSize{N: 12}))
	assert.Equal(t, 1, TotalPages(12, PageSize{N: 12}))
	assert.Equal(t, 2, TotalPages(13, PageSize{N: 12}))
	assert.Equal(t, 12, ParsePageSize("-3", 12).N)
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ClampPage(0, 3))
}

func TestWindow(t *testing.T) {
	off, lim := Window(3, PageSize{N: 9})
	assert.Equal(t, 18, off)
	assert.Equal(t, 9, lim)
	off, lim = Window(1, PageSize{All: true})
	assert.Zero(t, off)
	assert.Zero(t, lim)
}

func TestPageItems(t *testing.T) {
	assert.Len(t, PageItems(5, 2), 5)

	items := PageItems(10, 5)
	want := []PageItem{{Page: 1}, {Ellipsis: true}, {Page: 4}, {Page: 5}, {Page: 6}, {Ellipsis: true}, {Page: 10}}
	assert.Equal(t, want, items)

	first := PageItems(10, 1)
	assert.Equal(t, []PageItem{{Page: 1}, {Page: 2}, {Ellipsis: true}, {Page: 10}}, first)
}

func TestParseVolume(t *testing.T) {
	v, ok := ParseVolume("330ml")
	require.True(t, ok)
	assert.Equal(t, 330, v.ML)

	v, ok = ParseVolume("1.5L")
	require.True(t, ok)
	assert.Equal(t, 1500, v.ML)

	v, ok = ParseVolume("400g")
	require.True(t, ok)
	assert.Equal(t, "400g", v.Text)
	assert.Zero(t, v.ML)

	_, ok = ParseVolume("big")
	assert.False(t, ok)
}

func TestSortOrders(t *testing.T) {
	assert.Equal(t, []Order{{Column: "price", Desc: true}, {Column: "name"}}, SortOrders(SortPriceDesc))
	assert.Equal(t, "featured_order", SortOrders("unknown")[0].Column)
}
