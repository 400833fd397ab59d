package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// statementService defines the minimal interface needed by StatementHandler.
type statementService interface {
	GetStatement(ctx context.Context, slug string, year *int) (*domain.Statement, error)
}

// StatementHandler serves the public statement.
type StatementHandler struct {
	svc statementService
	log *slog.Logger
}

// NewStatementHandler creates a StatementHandler.
func NewStatementHandler(svc statementService, logger *slog.Logger) *StatementHandler {
	return &StatementHandler{svc: svc, log: logger.With("handler", "statement")}
}

type statementResponse struct {
	PersonName     string          `json:"pessoaNome"`
	Lines          []statementLine `json:"lancamentos"`
	LastUpdated    *string         `json:"ultimaAtualizacao"`
	AvailableYears []int           `json:"anosDisponiveis"`
	SelectedYear   *int            `json:"anoSelecionado,omitempty"`
}

type statementLine struct {
	Name          string       `json:"nome"`
	PlannedDate   string       `json:"dataPrevista"`
	ActualDate    *string      `json:"dataEfetiva"`
	Description   *string      `json:"descricao"`
	ActualAmount  *json.Number `json:"valorEfetivo"`
	PlannedAmount json.Number  `json:"valorPrevisto"`
	Kind          string       `json:"tipo"`
	Status        string       `json:"status"`
	Project       string       `json:"projeto"`
	Category      *string      `json:"categoria"`
}

// Get handles GET /api/extrato/{slug}?year=YYYY.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	var year *int
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = &y
	}

	st, err := h.svc.GetStatement(r.Context(), r.PathValue("slug"), year)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatementResponse(st))
}

func toStatementResponse(st *domain.Statement) statementResponse {
	lines := make([]statementLine, len(st.Lines))
	for i, l := range st.Lines {
		lines[i] = statementLine{
			Name:          l.PersonName,
			PlannedDate:   l.PlannedDate.Format(dateLayout),
			ActualDate:    formatDate(l.ActualDate),
			Description:   l.Description,
			ActualAmount:  amountPtr(l.ActualAmount),
			PlannedAmount: amount(l.PlannedAmount),
			Kind:          l.Kind,
			Status:        l.Status,
			Project:       l.Project,
			Category:      l.Category,
		}
	}

	years := st.AvailableYears
	if years == nil {
		years = []int{}
	}

	return statementResponse{
		PersonName:     st.PersonName,
		Lines:          lines,
		LastUpdated:    formatDate(st.LastUpdated),
		AvailableYears: years,
		SelectedYear:   st.SelectedYear,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// amount renders a money value as a JSON number with two decimals.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func amountPtr(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := amount(*d)
	return &n
}
