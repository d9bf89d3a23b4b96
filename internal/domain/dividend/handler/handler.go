// Package handler exposes the dividend API over JSON/HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/dividend-tracker/internal/domain/common"
	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/repository"
	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/service"
)

// ExtractTextRequest is the body for both extraction endpoints.
type ExtractTextRequest struct {
	Text string `json:"text"`
}

// LineItemResponse is one extracted statement row.
type LineItemResponse struct {
	SecurityName string  `json:"security_name"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Date         string  `json:"date"`
}

// CreateDividendRequest is the body for POST /v1/dividends.
type CreateDividendRequest struct {
	BrokerageName string  `json:"brokerage_name"`
	SecurityName  string  `json:"security_name"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentDate   string  `json:"payment_date"`
	AccountNumber string  `json:"account_number"`
	AccountType   string  `json:"account_type"`
	InputMethod   string  `json:"input_method"`
	Confidence    float64 `json:"confidence"`
	UserConfirmed bool    `json:"user_confirmed"`
}

// DividendResponse is a stored entry as returned by the API.
type DividendResponse struct {
	ID            string  `json:"id"`
	BrokerageName string  `json:"brokerage_name"`
	SecurityName  string  `json:"security_name"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentDate   string  `json:"payment_date"`
	AccountNumber string  `json:"account_number,omitempty"`
	AccountType   string  `json:"account_type"`
	InputMethod   string  `json:"input_method"`
	Confidence    float64 `json:"confidence"`
	CreatedAt     string  `json:"created_at"`
}

// MonthlyTotalResponse is one month/currency bucket of the yearly summary.
type MonthlyTotalResponse struct {
	Month      int    `json:"month"`
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	EntryCount int    `json:"entry_count"`
}

// Handler serves the dividend endpoints.
type Handler struct {
	svc    *service.DividendService
	logger *slog.Logger
}

func NewHandler(svc *service.DividendService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the dividend routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/extract/notification", h.ExtractNotification)
	r.Post("/v1/extract/transactions", h.ExtractTransactions)
	r.Post("/v1/dividends", h.CreateDividend)
	r.Post("/v1/dividends/statement", h.SaveStatement)
	r.Get("/v1/dividends", h.ListDividends)
	r.Get("/v1/dividends/summary", h.MonthlySummary)
}

// ExtractNotification parses a single brokerage notification text.
// POST /v1/extract/notification
func (h *Handler) ExtractNotification(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}
	result := h.svc.ExtractNotification(r.Context(), text)
	h.writeJSON(w, http.StatusOK, result)
}

// ExtractTransactions parses a pasted statement into dividend line items.
// POST /v1/extract/transactions
func (h *Handler) ExtractTransactions(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}
	items := h.svc.ExtractTransactions(r.Context(), text)
	resp := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, LineItemResponse{
			SecurityName: item.SecurityName,
			Amount:       item.Amount,
			Currency:     string(item.Currency),
			Date:         item.Date,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"items": resp})
}

// CreateDividend persists a (possibly user-edited) dividend entry.
// POST /v1/dividends
func (h *Handler) CreateDividend(w http.ResponseWriter, r *http.Request) {
	var req CreateDividendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	entry, err := h.svc.CreateEntry(r.Context(), service.CreateEntryInput{
		BrokerageName: req.BrokerageName,
		SecurityName:  req.SecurityName,
		Amount:        amount,
		Currency:      req.Currency,
		PaymentDate:   req.PaymentDate,
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		InputMethod:   req.InputMethod,
		Confidence:    req.Confidence,
		UserConfirmed: req.UserConfirmed,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toDividendResponse(entry))
}

// SaveStatement parses a statement text and persists every line item.
// POST /v1/dividends/statement
func (h *Handler) SaveStatement(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}
	result, err := h.svc.SaveStatement(r.Context(), text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"items_parsed": result.ItemsParsed,
		"items_saved":  result.ItemsSaved,
	})
}

// ListDividends returns the most recent entries.
// GET /v1/dividends?limit=N
func (h *Handler) ListDividends(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			h.writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	entries, err := h.svc.ListRecent(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp := make([]DividendResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toDividendResponse(e))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"dividends": resp})
}

// MonthlySummary returns per-month totals for a year.
// GET /v1/dividends/summary?year=YYYY
func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = n
	}

	totals, err := h.svc.MonthlySummary(r.Context(), year)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp := make([]MonthlyTotalResponse, 0, len(totals))
	for _, t := range totals {
		resp = append(resp, MonthlyTotalResponse{
			Month:      t.Month,
			Currency:   t.Currency,
			Total:      t.Total.String(),
			EntryCount: t.EntryCount,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"year": year, "months": resp})
}

func (h *Handler) decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ExtractTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	if req.Text == "" {
		h.writeError(w, http.StatusBadRequest, "text is required")
		return "", false
	}
	return req.Text, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrBadRequest):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrLowConfidence):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func toDividendResponse(e *repository.DividendEntry) DividendResponse {
	return DividendResponse{
		ID:            e.ID.String(),
		BrokerageName: e.BrokerageName,
		SecurityName:  e.SecurityName,
		Amount:        e.Amount.String(),
		Currency:      e.Currency,
		PaymentDate:   e.PaymentDate.Format("2006-01-02"),
		AccountNumber: e.AccountNumber,
		AccountType:   e.AccountType,
		InputMethod:   e.InputMethod,
		Confidence:    e.Confidence,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}
