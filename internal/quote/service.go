package quote

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/wichananm65/beverage-shop/internal/listing"
)

const PageSize = 20

// Codec is the admin inbox query state.
var Codec = listing.NewCodec("status", "page")

// Page is one page of the admin inbox.
type Page struct {
	State      listing.State      `json:"state"`
	Items      []Request          `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Links      []listing.PageItem `json:"links"`
	Hrefs      map[string]string  `json:"hrefs"`
}

// Notifier is told about each new request.
type Notifier interface {
	QuoteReceived(ctx context.Context, r Request)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Submit validates and stores a public quote request.
func (s *Service) Submit(ctx context.Context, f Form) (Request, error) {
	req, err := Normalize(f)
	if err != nil {
		return Request{}, err
	}
	req, err = s.repo.Create(ctx, req)
	if err != nil {
		return Request{}, err
	}
	if s.notifier != nil {
		s.notifier.QuoteReceived(ctx, req)
	}
	return req, nil
}

// List returns the inbox page described by state. Unknown statuses are
// ignored.
func (s *Service) List(ctx context.Context, state listing.State) (Page, error) {
	status := state.Get("status")
	if !ValidStatus(status) {
		status = ""
		state = Codec.Patch(state, map[string]string{"status": ""})
	}
	total, err := s.repo.Count(ctx, status)
	if err != nil {
		return Page{}, err
	}
	size := listing.PageSize{N: PageSize}
	totalPages := listing.TotalPages(total, size)
	page := listing.ClampPage(listing.ParsePage(state.Get("page")), totalPages)
	offset, limit := listing.Window(page, size)
	items, err := s.repo.List(ctx, status, offset, limit)
	if err != nil {
		return Page{}, err
	}

	links := listing.PageItems(totalPages, page)
	hrefs := make(map[string]string, len(links))
	for _, l := range links {
		if !l.Ellipsis {
			n := strconv.Itoa(l.Page)
			hrefs[n] = Codec.Href("/admin/bao-gia", state, map[string]string{"page": n})
		}
	}
	return Page{
		State:      state,
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Links:      links,
		Hrefs:      hrefs,
	}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// LogNotifier logs new requests for whoever watches the service logs.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) QuoteReceived(ctx context.Context, r Request) {
	log := n.Log
	if log == nil {
		log = slog.Default()
	}
	log.InfoContext(ctx, "quote request received", "id", r.ID, "name", r.FullName, "phone", r.Phone)
}
