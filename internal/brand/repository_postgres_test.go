package brand

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "abbr"}).
		AddRow("c1", "Bia", "bia", "BI").
		AddRow("c2", "Nước ngọt", "nuoc-ngot", nil)
	mock.ExpectQuery("SELECT id, name, slug, abbr FROM brands ORDER BY name").WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 brands got %d", len(got))
	}
	if got[0].Abbr == nil || *got[0].Abbr != "BI" {
		t.Fatalf("unexpected abbr for first row: %+v", got[0])
	}
	if got[1].Abbr != nil {
		t.Fatalf("expected nil abbr for second row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO brands").
		WithArgs("Bia", "bia", "BI").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1"))

	repo := NewPostgresRepository(db)
	got, err := repo.Upsert(context.Background(), Brand{Name: "Bia", Slug: "bia", Abbr: ptrString("BI")})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got.ID != "c1" {
		t.Fatalf("expected id c1 got %q", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM brands").WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	if err := repo.Delete(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}
