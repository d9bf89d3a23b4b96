// Package service provides the dividend orchestration logic: run the
// extraction core over raw text, gate the result on confidence, and persist
// entries through the repository.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/dividend-tracker/internal/domain/common"
	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/extractor"
	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/repository"
	"github.com/FACorreiaa/dividend-tracker/pkg/observability"
)

// Input methods stored alongside each entry.
const (
	InputMethodManual = "manual"
	InputMethodText   = "text"
	InputMethodOCR    = "ocr"
)

// CreateEntryInput is a (possibly user-edited) dividend entry submitted for
// persistence. Zero Confidence with UserConfirmed unset means the entry came
// straight from an extraction and is subject to the confidence floor.
type CreateEntryInput struct {
	BrokerageName string
	SecurityName  string
	Amount        decimal.Decimal
	Currency      string
	PaymentDate   string // YYYY-MM-DD
	AccountNumber string
	AccountType   string
	InputMethod   string
	Confidence    float64
	UserConfirmed bool
}

// BulkResult reports the outcome of persisting a parsed statement.
type BulkResult struct {
	ItemsParsed int
	ItemsSaved  int
}

// DividendService wires the extraction core to storage.
type DividendService struct {
	repo            repository.DividendRepository
	logger          *slog.Logger
	confidenceFloor float64
	now             func() time.Time
}

func NewDividendService(repo repository.DividendRepository, logger *slog.Logger, confidenceFloor float64) *DividendService {
	return &DividendService{
		repo:            repo,
		logger:          logger,
		confidenceFloor: confidenceFloor,
		now:             time.Now,
	}
}

// WithClock overrides the service clock. Tests use this to pin default dates.
func (s *DividendService) WithClock(now func() time.Time) *DividendService {
	s.now = now
	return s
}

// ExtractNotification runs the single-notification extraction over raw text.
// Extraction never fails; missing fields surface as defaults with a lower
// confidence score.
func (s *DividendService) ExtractNotification(ctx context.Context, text string) extractor.Result {
	start := time.Now()
	result := extractor.ExtractNotification(text, s.now())
	observability.ObserveExtraction("notification", result.Confidence, time.Since(start))

	s.logger.DebugContext(ctx, "notification extracted",
		slog.String("brokerage", result.BrokerageName),
		slog.String("security", result.SecurityName),
		slog.Float64("confidence", result.Confidence))
	return result
}

// ExtractTransactions parses a pasted account-statement text into dividend
// line items.
func (s *DividendService) ExtractTransactions(ctx context.Context, text string) []extractor.LineItem {
	start := time.Now()
	items := extractor.ExtractLineItems(text, s.now())
	observability.ObserveStatementParse(len(items), time.Since(start))

	s.logger.DebugContext(ctx, "statement parsed", slog.Int("items", len(items)))
	return items
}

// CreateEntry validates and persists a single dividend entry. Unconfirmed
// extractions below the confidence floor are rejected so the caller can route
// them back for review.
func (s *DividendService) CreateEntry(ctx context.Context, in CreateEntryInput) (*repository.DividendEntry, error) {
	if in.SecurityName == "" {
		return nil, fmt.Errorf("%w: security name is required", common.ErrBadRequest)
	}
	if in.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrBadRequest)
	}
	currency := in.Currency
	if currency == "" {
		currency = string(extractor.CurrencyKRW)
	}
	if currency != string(extractor.CurrencyKRW) && currency != string(extractor.CurrencyUSD) {
		return nil, fmt.Errorf("%w: unsupported currency %q", common.ErrBadRequest, in.Currency)
	}

	paymentDate, err := s.resolveDate(in.PaymentDate)
	if err != nil {
		return nil, err
	}

	method := in.InputMethod
	if method == "" {
		method = InputMethodManual
	}
	confidence := in.Confidence
	if method == InputMethodManual && !in.UserConfirmed {
		// Hand-entered values are trusted as-is.
		in.UserConfirmed = true
		if confidence == 0 {
			confidence = 1
		}
	}
	if !in.UserConfirmed && confidence < s.confidenceFloor {
		s.logger.InfoContext(ctx, "entry rejected below confidence floor",
			slog.Float64("confidence", confidence),
			slog.Float64("floor", s.confidenceFloor))
		return nil, fmt.Errorf("%w: %.2f < %.2f", common.ErrLowConfidence, confidence, s.confidenceFloor)
	}

	entry := &repository.DividendEntry{
		BrokerageName: in.BrokerageName,
		SecurityName:  in.SecurityName,
		Amount:        in.Amount,
		Currency:      currency,
		PaymentDate:   paymentDate,
		AccountNumber: in.AccountNumber,
		AccountType:   in.AccountType,
		InputMethod:   method,
		Confidence:    confidence,
	}
	if entry.AccountType == "" {
		entry.AccountType = string(extractor.AccountGeneral)
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save dividend entry: %w", err)
	}
	observability.CountEntrySaved(entry.InputMethod, entry.Currency)
	return entry, nil
}

// SaveStatement parses a statement text and persists every extracted line
// item in one COPY batch, stamping each with the shared statement context.
func (s *DividendService) SaveStatement(ctx context.Context, text string) (*BulkResult, error) {
	items := s.ExtractTransactions(ctx, text)
	if len(items) == 0 {
		return &BulkResult{}, nil
	}

	entries := make([]*repository.DividendEntry, 0, len(items))
	for _, item := range items {
		paymentDate, err := s.resolveDate(item.Date)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &repository.DividendEntry{
			BrokerageName: extractor.StatementBrokerage,
			SecurityName:  item.SecurityName,
			Amount:        decimal.NewFromFloat(item.Amount),
			Currency:      string(item.Currency),
			PaymentDate:   paymentDate,
			AccountType:   string(extractor.StatementAccountType),
			InputMethod:   InputMethodOCR,
			Confidence:    s.confidenceFloor,
		})
	}

	saved, err := s.repo.BulkInsert(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to save statement entries: %w", err)
	}
	for _, e := range entries[:saved] {
		observability.CountEntrySaved(e.InputMethod, e.Currency)
	}
	return &BulkResult{ItemsParsed: len(items), ItemsSaved: saved}, nil
}

// ListRecent returns the newest entries, most recent payment first.
func (s *DividendService) ListRecent(ctx context.Context, limit int) ([]*repository.DividendEntry, error) {
	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dividend entries: %w", err)
	}
	return entries, nil
}

// MonthlySummary returns per-month, per-currency totals for a year.
func (s *DividendService) MonthlySummary(ctx context.Context, year int) ([]repository.MonthlyTotal, error) {
	if year < 1990 || year > 2100 {
		return nil, fmt.Errorf("%w: year %d out of range", common.ErrBadRequest, year)
	}
	totals, err := s.repo.MonthlySummary(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize dividends: %w", err)
	}
	return totals, nil
}

func (s *DividendService) resolveDate(value string) (time.Time, error) {
	if value == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid payment date %q", common.ErrBadRequest, value)
	}
	return t, nil
}
