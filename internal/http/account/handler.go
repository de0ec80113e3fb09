package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alisson/payable/internal/account"
	"github.com/alisson/payable/internal/importer"
)

type Handler struct {
	svc       *account.Service
	importSvc *importer.Service
}

func NewHandler(svc *account.Service, importSvc *importer.Service) *Handler {
	return &Handler{
		svc:       svc,
		importSvc: importSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/total-paid", h.totalPaid)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type accountRequest struct {
	Amount      *json.Number `json:"amount"`
	DueDate     string       `json:"dueDate"`
	PaymentDate string       `json:"paymentDate"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
}

// toParams converts the wire representation into a candidate. Malformed
// amounts and dates are request errors here, unlike the bulk path where
// they become per-row outcomes.
func (req accountRequest) toParams() (account.CreateParams, error) {
	params := account.CreateParams{
		Description: req.Description,
		Status:      req.Status,
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(req.Amount.String())
		if err != nil {
			return params, fmt.Errorf("invalid amount: %q", req.Amount.String())
		}

		params.Amount = &amount
	}

	var err error

	if params.DueDate, err = parseOptionalDate(req.DueDate, "dueDate"); err != nil {
		return params, err
	}

	if params.PaymentDate, err = parseOptionalDate(req.PaymentDate, "paymentDate"); err != nil {
		return params, err
	}

	return params, nil
}

func parseOptionalDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q (expected YYYY-MM-DD)", field, s)
	}

	return &t, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := account.ListFilter{
		Description: r.URL.Query().Get("description"),
		Size:        20,
	}

	if s := r.URL.Query().Get("due_date_start"); s != "" {
		if t, err := time.Parse(dateLayout, s); err == nil {
			filter.DueDateStart = &t
		}
	}

	if s := r.URL.Query().Get("due_date_end"); s != "" {
		if t, err := time.Parse(dateLayout, s); err == nil {
			filter.DueDateEnd = &t
		}
	}

	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		filter.Page = n
	}

	if n, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil {
		filter.Size = n
	}

	accs, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := pageResponse{
		Content:       toResponseList(accs),
		Page:          filter.Page,
		Size:          filter.Size,
		TotalElements: total,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	params, ok := decodeParams(w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	acc, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) totalPaid(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(dateLayout, r.URL.Query().Get("start_date"))
	if err != nil {
		http.Error(w, "start_date is required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	end, err := time.Parse(dateLayout, r.URL.Query().Get("end_date"))
	if err != nil {
		http.Error(w, "end_date is required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	total, err := h.svc.TotalPaid(r.Context(), start, end)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(totalPaidResponse{TotalPaid: total.String()}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

const maxUploadSize = 10 << 20

// importCSV runs the bulk pipeline: decode the upload, process every row
// independently, and stream back the annotated results CSV. Structural
// problems with the file are request errors; individual bad rows come
// back as data inside the report.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := importer.Decode(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results := h.importSvc.Import(r.Context(), records)

	w.Header().Set("Content-Disposition", "attachment; filename=import_results.csv")
	w.Header().Set("Content-Type", "text/plain")

	if err := importer.Encode(w, results); err != nil {
		// Headers are already on the wire; all we can do is log.
		slog.Error("failed to encode import results", "error", err)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

func decodeParams(w http.ResponseWriter, r *http.Request) (account.CreateParams, bool) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return account.CreateParams{}, false
	}

	params, err := req.toParams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return account.CreateParams{}, false
	}

	return params, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *account.ValidationError

	var statusErr *account.InvalidStatusError

	switch {
	case errors.Is(err, account.ErrNotFound):
		http.Error(w, "account not found", http.StatusNotFound)
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &statusErr):
		http.Error(w, statusErr.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
