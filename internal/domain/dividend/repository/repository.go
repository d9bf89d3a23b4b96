// Package repository defines the persistence contract for dividend entries.
// The extraction core never talks to storage directly; callers hand it the
// structured result and this layer owns the insert/query surface.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DividendEntry is a persisted dividend payment record. Amount is carried as
// a decimal so NUMERIC columns round-trip without float drift.
type DividendEntry struct {
	ID            uuid.UUID       `db:"id"`
	BrokerageName string          `db:"brokerage_name"`
	SecurityName  string          `db:"security_name"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	PaymentDate   time.Time       `db:"payment_date"`
	AccountNumber string          `db:"account_number"`
	AccountType   string          `db:"account_type"`
	InputMethod   string          `db:"input_method"` // manual | text | ocr
	Confidence    float64         `db:"confidence_score"`
	CreatedAt     time.Time       `db:"created_at"`
}

// MonthlyTotal is one month/currency bucket of the yearly summary.
type MonthlyTotal struct {
	Month      int             `db:"month"`
	Currency   string          `db:"currency"`
	Total      decimal.Decimal `db:"total"`
	EntryCount int             `db:"entry_count"`
}

// DividendRepository is the storage contract consumed by the service layer.
type DividendRepository interface {
	Insert(ctx context.Context, entry *DividendEntry) error
	BulkInsert(ctx context.Context, entries []*DividendEntry) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*DividendEntry, error)
	MonthlySummary(ctx context.Context, year int) ([]MonthlyTotal, error)
}
