package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is the subset of pgxpool.Pool the repository uses, kept narrow so
// tests can substitute a mock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

var _ PgxPool = (*pgxpool.Pool)(nil)

type PostgresDividendRepository struct {
	pgpool PgxPool
	logger *slog.Logger
}

func NewPostgresDividendRepository(pgpool PgxPool, logger *slog.Logger) *PostgresDividendRepository {
	return &PostgresDividendRepository{pgpool: pgpool, logger: logger}
}

var _ DividendRepository = (*PostgresDividendRepository)(nil)

func (r *PostgresDividendRepository) Insert(ctx context.Context, entry *DividendEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO dividend_entries (
			id, brokerage_name, security_name, amount, currency,
			payment_date, account_number, account_type, input_method,
			confidence_score, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pgpool.Exec(ctx, query,
		entry.ID, entry.BrokerageName, entry.SecurityName, entry.Amount,
		entry.Currency, entry.PaymentDate, entry.AccountNumber,
		entry.AccountType, entry.InputMethod, entry.Confidence, entry.CreatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to insert dividend entry",
			slog.String("security", entry.SecurityName), slog.Any("error", err))
		return fmt.Errorf("insert dividend entry: %w", err)
	}
	return nil
}

var copyFromColumns = []string{
	"id", "brokerage_name", "security_name", "amount", "currency",
	"payment_date", "account_number", "account_type", "input_method",
	"confidence_score", "created_at",
}

// BulkInsert streams entries through COPY. IDs and timestamps are filled in
// for entries that lack them.
func (r *PostgresDividendRepository) BulkInsert(ctx context.Context, entries []*DividendEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		rows = append(rows, []any{
			e.ID, e.BrokerageName, e.SecurityName, e.Amount, e.Currency,
			e.PaymentDate, e.AccountNumber, e.AccountType, e.InputMethod,
			e.Confidence, e.CreatedAt,
		})
	}

	copied, err := r.pgpool.CopyFrom(ctx,
		pgx.Identifier{"dividend_entries"},
		copyFromColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to bulk insert dividend entries",
			slog.Int("count", len(entries)), slog.Any("error", err))
		return 0, fmt.Errorf("bulk insert dividend entries: %w", err)
	}
	return int(copied), nil
}

func (r *PostgresDividendRepository) ListRecent(ctx context.Context, limit int) ([]*DividendEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, brokerage_name, security_name, amount, currency,
		       payment_date, account_number, account_type, input_method,
		       confidence_score, created_at
		FROM dividend_entries
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $1`

	rows, err := r.pgpool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list dividend entries: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[DividendEntry])
	if err != nil {
		return nil, fmt.Errorf("collect dividend entries: %w", err)
	}
	return entries, nil
}

func (r *PostgresDividendRepository) MonthlySummary(ctx context.Context, year int) ([]MonthlyTotal, error) {
	query := `
		SELECT EXTRACT(MONTH FROM payment_date)::int AS month,
		       currency,
		       SUM(amount) AS total,
		       COUNT(*)::int AS entry_count
		FROM dividend_entries
		WHERE EXTRACT(YEAR FROM payment_date) = $1
		GROUP BY month, currency
		ORDER BY month, currency`

	rows, err := r.pgpool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}

	totals, err := pgx.CollectRows(rows, pgx.RowToStructByName[MonthlyTotal])
	if err != nil {
		return nil, fmt.Errorf("collect monthly summary: %w", err)
	}
	return totals, nil
}
