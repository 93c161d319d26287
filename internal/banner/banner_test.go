package banner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
)

func TestPostgresRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "image_url", "link", "alt", "sort_order"}).
		AddRow(1, "/images/banner/bannernha.jpg", nil, "Banner", 1).
		AddRow(2, "/images/banner/bannergd.jpg", "/san-pham", nil, 2)
	mock.ExpectQuery("FROM banners").WithArgs(10).WillReturnRows(rows)

	got, err := NewPostgresRepository(db).List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].Alt == nil || got[1].Link == nil || *got[1].Link != "/san-pham" {
		t.Fatalf("unexpected banners: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetBanners_LimitAndOrder(t *testing.T) {
	repo := NewInMemoryRepository([]Banner{
		{ID: 1, ImageURL: "/b.png", SortOrder: 2},
		{ID: 2, ImageURL: "/a.png", SortOrder: 1},
		{ID: 3, ImageURL: "/c.png", SortOrder: 3},
	})
	app := fiber.New()
	NewHandler(NewService(repo)).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/banners?limit=2", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var got []Banner
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected banners: %+v", got)
	}
}

type failingRepo struct{}

func (failingRepo) List(context.Context, int) ([]Banner, error) {
	return nil, errors.New("relation \"banners\" does not exist")
}

func TestGetBanners_ErrorReturnsEmptyList(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(failingRepo{})).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/banners", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var got []Banner
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

type limitRepo struct{ got int }

func (r *limitRepo) List(_ context.Context, limit int) ([]Banner, error) {
	r.got = limit
	return []Banner{}, nil
}

func TestServiceList_ClampsLimit(t *testing.T) {
	repo := &limitRepo{}
	s := NewService(repo)
	for in, want := range map[int]int{0: DefaultLimit, -3: DefaultLimit, 5: 5, 500: MaxLimit} {
		if _, err := s.List(context.Background(), in); err != nil {
			t.Fatalf("List(%d): %v", in, err)
		}
		if repo.got != want {
			t.Fatalf("List(%d) asked repo for %d, want %d", in, repo.got, want)
		}
	}
}
