package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO quote_requests").
		WithArgs("Nam", "0912345678", nil, nil, StatusNew).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("q1", now))

	r := NewPostgresRepository(db)
	got, err := r.Create(context.Background(), Request{FullName: "Nam", Phone: "0912345678", Status: StatusNew})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != "q1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected request %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListAppliesWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "full_name", "phone", "address", "message", "status", "created_at"}).
		AddRow("q1", "Nam", "0912345678", nil, "Cần báo giá", StatusNew, time.Now())
	mock.ExpectQuery(`FROM quote_requests .* LIMIT \$2 OFFSET \$3`).
		WithArgs(StatusNew, 20, 40).
		WillReturnRows(rows)

	got, err := NewPostgresRepository(db).List(context.Background(), StatusNew, 40, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Address != nil || got[0].Message == nil {
		t.Fatalf("unexpected rows %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateStatusMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE quote_requests SET status").
		WithArgs("q9", StatusClosed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewPostgresRepository(db).UpdateStatus(context.Background(), "q9", StatusClosed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
