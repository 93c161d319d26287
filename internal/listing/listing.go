// Package listing keeps storefront and admin filter state in the URL query.
//
// A State holds only the keys declared on its Codec. Empty and absent values
// are equivalent: Encode never emits "key=" and Decode never stores "".
package listing

import (
	"net/url"
	"strconv"
)

// PageSizeAll is the page size sentinel that returns every row on one page.
const PageSizeAll = "all"

// State is the decoded filter state, keyed by query parameter name.
type State map[string]string

// Get returns the value stored for key, or "".
func (s State) Get(key string) string { return s[key] }

// Codec maps a State to and from a query string for a fixed key set.
type Codec struct {
	keys []string
}

func NewCodec(keys ...string) Codec {
	return Codec{keys: keys}
}

func (c Codec) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Decode reads the declared keys from values. Multi-valued parameters
// collapse to their first value.
func (c Codec) Decode(values url.Values) State {
	s := State{}
	for _, k := range c.keys {
		if vs := values[k]; len(vs) > 0 && vs[0] != "" {
			s[k] = vs[0]
		}
	}
	return s
}

// DecodeQuery parses a raw query string and decodes it.
func (c Codec) DecodeQuery(raw string) State {
	// malformed pairs are skipped; ParseQuery keeps the rest
	values, _ := url.ParseQuery(raw)
	return c.Decode(values)
}

// Encode renders the non-empty declared keys of s as a query string.
func (c Codec) Encode(s State) string {
	values := url.Values{}
	for _, k := range c.keys {
		if v := s[k]; v != "" {
			values.Set(k, v)
		}
	}
	return values.Encode()
}

// Patch returns a copy of base with patch applied. An empty value removes
// the key; any other value overwrites it. Keys not named in patch are kept.
func (c Codec) Patch(base State, patch map[string]string) State {
	out := State{}
	for k, v := range base {
		if v != "" {
			out[k] = v
		}
	}
	for k, v := range patch {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Href builds the link for a "change one filter, keep the rest" action.
// The page always goes back to 1 unless the patch sets it.
func (c Codec) Href(base string, s State, patch map[string]string) string {
	if _, ok := patch["page"]; !ok {
		next := make(map[string]string, len(patch)+1)
		for k, v := range patch {
			next[k] = v
		}
		next["page"] = "1"
		patch = next
	}
	qs := c.Encode(c.Patch(s, patch))
	if qs == "" {
		return base
	}
	return base + "?" + qs
}

// PageSize is either a positive row count or "show all".
type PageSize struct {
	N   int
	All bool
}

// ParsePageSize reads a page size parameter, falling back to def.
func ParsePageSize(raw string, def int) PageSize {
	if raw == PageSizeAll {
		return PageSize{All: true}
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return PageSize{N: n}
	}
	return PageSize{N: def}
}

func (p PageSize) String() string {
	if p.All {
		return PageSizeAll
	}
	return strconv.Itoa(p.N)
}

// ParsePage reads a 1-based page number; anything invalid is page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TotalPages is max(1, ceil(total/size)), or 1 for "show all".
func TotalPages(total int, size PageSize) int {
	if size.All || size.N <= 0 || total <= 0 {
		return 1
	}
	pages := (total + size.N - 1) / size.N
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage keeps page inside [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return totalPages
	}
	if page < 1 {
		return 1
	}
	return page
}

// Window returns the row offset and limit for page. A zero limit means no
// limit.
func Window(page int, size PageSize) (offset, limit int) {
	if size.All {
		return 0, 0
	}
	return (page - 1) * size.N, size.N
}

// PageItem is one pagination control: a page number or an ellipsis.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageItems lists every page when there are at most seven, otherwise
// 1 … p-1 p p+1 … last.
func PageItems(totalPages, page int) []PageItem {
	items := make([]PageItem, 0, 9)
	if totalPages <= 7 {
		for i := 1; i <= totalPages; i++ {
			items = append(items, PageItem{Page: i})
		}
		return items
	}

	items = append(items, PageItem{Page: 1})
	if page > 3 {
		items = append(items, PageItem{Ellipsis: true})
	}
	start := max(2, page-1)
	end := min(totalPages-1, page+1)
	for i := start; i <= end; i++ {
		items = append(items, PageItem{Page: i})
	}
	if page < totalPages-2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	return append(items, PageItem{Page: totalPages})
}
