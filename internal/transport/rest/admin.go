package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/extrato-backend/internal/domain"
	"github.com/heartmarshall/extrato-backend/internal/service/people"
)

// peopleService defines the minimal interface needed by AdminHandler.
type peopleService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Person, error)
	UpdatePhones(ctx context.Context, updates []people.PhoneUpdate) (int, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// AdminHandler serves the people administration endpoints.
type AdminHandler struct {
	people peopleService
	log    *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(people peopleService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		people: people,
		log:    logger.With("handler", "admin"),
	}
}

type personResponse struct {
	ID         int64   `json:"id"`
	Contact    string  `json:"contato"`
	FirstName  string  `json:"primeiroNome"`
	MagicToken string  `json:"numeroMagico"`
	Slug       string  `json:"slug"`
	Phone1     *string `json:"fone1"`
	Phone2     *string `json:"fone2"`
	Phone3     *string `json:"fone3"`
	Active     bool    `json:"ativo"`
}

type phoneUpdateRequest struct {
	Contact string  `json:"contato"`
	Phone1  *string `json:"fone1"`
	Phone2  *string `json:"fone2"`
	Phone3  *string `json:"fone3"`
}

type setActiveRequest struct {
	Active *bool `json:"ativo"`
}

// ListPeople handles GET /api/admin/pessoas[?all=true]. Only active people
// are listed unless all=true.
func (h *AdminHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	list, err := h.people.List(r.Context(), !all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]personResponse, len(list))
	for i := range list {
		p := &list[i]
		resp[i] = personResponse{
			ID:         p.ID,
			Contact:    p.Contact,
			FirstName:  p.FirstNameSlug,
			MagicToken: p.MagicToken,
			Slug:       p.Slug(),
			Phone1:     p.Phone1,
			Phone2:     p.Phone2,
			Phone3:     p.Phone3,
			Active:     p.Active,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdatePhones handles POST /api/admin/pessoas/telefones.
func (h *AdminHandler) UpdatePhones(w http.ResponseWriter, r *http.Request) {
	var req []phoneUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := make([]people.PhoneUpdate, len(req))
	for i, u := range req {
		updates[i] = people.PhoneUpdate{Contact: u.Contact, Phone1: u.Phone1, Phone2: u.Phone2, Phone3: u.Phone3}
	}

	n, err := h.people.UpdatePhones(r.Context(), updates)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"atualizados": n})
}

// SetActive handles PATCH /api/admin/pessoas/{id}/ativo.
func (h *AdminHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req setActiveRequest
	if err := decodeJSON(r, &req); err != nil || req.Active == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.people.SetActive(r.Context(), id, *req.Active); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
