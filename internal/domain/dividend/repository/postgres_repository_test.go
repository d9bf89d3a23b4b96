package repository

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

func newTestRepository(t *testing.T) (*PostgresDividendRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresDividendRepository(mock, logger), mock
}

func TestPostgresDividendRepository_Insert(t *testing.T) {
	repo, mock := newTestRepository(t)

	entry := &DividendEntry{
		BrokerageName: "신한투자증권",
		SecurityName:  "TIGER 미국배당다우존스",
		Amount:        decimal.NewFromInt(12500),
		Currency:      "KRW",
		PaymentDate:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		AccountNumber: "312-53-****480",
		AccountType:   "일반계좌",
		InputMethod:   "text",
		Confidence:    0.885,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dividend_entries")).
		WithArgs(pgxmock.AnyArg(), entry.BrokerageName, entry.SecurityName, entry.Amount,
			entry.Currency, entry.PaymentDate, entry.AccountNumber, entry.AccountType,
			entry.InputMethod, entry.Confidence, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Insert(context.Background(), entry); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be filled")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresDividendRepository_BulkInsert(t *testing.T) {
	repo, mock := newTestRepository(t)

	entries := []*DividendEntry{
		{
			BrokerageName: "토스증권",
			SecurityName:  "TIGER 미국배당다우존스",
			Amount:        decimal.NewFromFloat(5.14),
			Currency:      "USD",
			PaymentDate:   time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC),
			AccountType:   "일반계좌",
			InputMethod:   "ocr",
			Confidence:    0.76,
		},
		{
			BrokerageName: "토스증권",
			SecurityName:  "KODEX 배당성장",
			Amount:        decimal.NewFromInt(1234),
			Currency:      "KRW",
			PaymentDate:   time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC),
			AccountType:   "일반계좌",
			InputMethod:   "ocr",
			Confidence:    0.76,
		},
	}

	mock.ExpectCopyFrom(pgx.Identifier{"dividend_entries"}, copyFromColumns).
		WillReturnResult(2)

	n, err := repo.BulkInsert(context.Background(), entries)
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows copied, got %d", n)
	}
	for i, e := range entries {
		if e.ID == uuid.Nil {
			t.Fatalf("entry %d: expected generated id", i)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresDividendRepository_BulkInsert_Empty(t *testing.T) {
	repo, mock := newTestRepository(t)

	n, err := repo.BulkInsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows copied, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresDividendRepository_ListRecent(t *testing.T) {
	repo, mock := newTestRepository(t)

	id := uuid.New()
	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "brokerage_name", "security_name", "amount", "currency",
		"payment_date", "account_number", "account_type", "input_method",
		"confidence_score", "created_at",
	}).AddRow(
		id, "삼성증권", "SCHD", decimal.NewFromFloat(12.40), "USD",
		time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC), "", "일반계좌", "text",
		0.76, now,
	)

	mock.ExpectQuery(regexp.QuoteMeta("FROM dividend_entries")).
		WithArgs(10).
		WillReturnRows(rows)

	entries, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != id || entries[0].SecurityName != "SCHD" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresDividendRepository_ListRecent_DefaultLimit(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := pgxmock.NewRows([]string{
		"id", "brokerage_name", "security_name", "amount", "currency",
		"payment_date", "account_number", "account_type", "input_method",
		"confidence_score", "created_at",
	})
	mock.ExpectQuery(regexp.QuoteMeta("FROM dividend_entries")).
		WithArgs(50).
		WillReturnRows(rows)

	entries, err := repo.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresDividendRepository_MonthlySummary(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := pgxmock.NewRows([]string{"month", "currency", "total", "entry_count"}).
		AddRow(6, "USD", decimal.NewFromFloat(12.40), 1).
		AddRow(7, "KRW", decimal.NewFromInt(13734), 2).
		AddRow(7, "USD", decimal.NewFromFloat(5.14), 1)

	mock.ExpectQuery(regexp.QuoteMeta("EXTRACT(MONTH FROM payment_date)")).
		WithArgs(2025).
		WillReturnRows(rows)

	totals, err := repo.MonthlySummary(context.Background(), 2025)
	if err != nil {
		t.Fatalf("MonthlySummary: %v", err)
	}
	if len(totals) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(totals))
	}
	if totals[1].Month != 7 || totals[1].Currency != "KRW" || totals[1].EntryCount != 2 {
		t.Fatalf("unexpected bucket: %+v", totals[1])
	}
	if !totals[1].Total.Equal(decimal.NewFromInt(13734)) {
		t.Fatalf("unexpected total: %s", totals[1].Total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
