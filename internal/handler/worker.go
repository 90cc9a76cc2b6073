package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
)

type WorkerHandler struct {
	workers *store.WorkerStore
	logger  *slog.Logger
}

func NewWorkerHandler(ws *store.WorkerStore, logger *slog.Logger) *WorkerHandler {
	return &WorkerHandler{workers: ws, logger: logger}
}

type workerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
}

func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req workerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.HourlyRateCents < 0 {
		writeError(w, http.StatusBadRequest, "hourly_rate_cents must not be negative")
		return
	}

	worker, err := h.workers.Create(auth.UserID(r.Context()), req.Name, req.Email, req.Role, req.HourlyRateCents)
	if err != nil {
		h.logger.Error("create worker", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create worker")
		return
	}
	writeJSON(w, http.StatusCreated, worker)
}

func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workers.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list workers", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list workers")
		return
	}
	if workers == nil {
		workers = []model.Worker{}
	}
	writeJSON(w, http.StatusOK, workers)
}

func (h *WorkerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	worker, err := h.workers.GetForUser(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get worker", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get worker")
		return
	}
	if worker == nil {
		writeError(w, http.StatusNotFound, "worker not found")
		return
	}
	writeJSON(w, http.StatusOK, worker)
}

func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.workers.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get worker", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get worker")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "worker not found")
		return
	}

	var req workerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = existing.Name
	}
	if req.Email == "" {
		req.Email = existing.Email
	}
	if req.Role == "" {
		req.Role = existing.Role
	}
	if req.HourlyRateCents == 0 {
		req.HourlyRateCents = existing.HourlyRateCents
	}
	if req.HourlyRateCents < 0 {
		writeError(w, http.StatusBadRequest, "hourly_rate_cents must not be negative")
		return
	}

	worker, err := h.workers.Update(id, userID, req.Name, req.Email, req.Role, req.HourlyRateCents)
	if err != nil {
		h.logger.Error("update worker", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update worker")
		return
	}
	writeJSON(w, http.StatusOK, worker)
}

func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.workers.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get worker", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get worker")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "worker not found")
		return
	}

	if err := h.workers.Delete(id, userID); err != nil {
		h.logger.Error("delete worker", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete worker")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Payroll ---

type payrollRequest struct {
	PeriodStart     *time.Time `json:"period_start"`
	PeriodEnd       *time.Time `json:"period_end"`
	HoursHundredths int64      `json:"hours_hundredths"`
	AmountCents     int64      `json:"amount_cents"`
}

func (h *WorkerHandler) CreatePayroll(w http.ResponseWriter, r *http.Request) {
	workerID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	worker, err := h.workers.GetForUser(workerID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get worker", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get worker")
		return
	}
	if worker == nil {
		writeError(w, http.StatusNotFound, "worker not found")
		return
	}

	var req payrollRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.PeriodStart == nil || req.PeriodEnd == nil {
		writeError(w, http.StatusBadRequest, "period_start and period_end are required")
		return
	}
	if !req.PeriodEnd.After(*req.PeriodStart) {
		writeError(w, http.StatusBadRequest, "period_end must be after period_start")
		return
	}
	if req.HoursHundredths < 0 || req.AmountCents < 0 {
		writeError(w, http.StatusBadRequest, "hours and amount must not be negative")
		return
	}

	record, err := h.workers.CreatePayroll(worker.ID, *req.PeriodStart, *req.PeriodEnd, req.HoursHundredths, req.AmountCents)
	if err != nil {
		h.logger.Error("create payroll record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create payroll record")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *WorkerHandler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	workerID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	worker, err := h.workers.GetForUser(workerID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get worker", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get worker")
		return
	}
	if worker == nil {
		writeError(w, http.StatusNotFound, "worker not found")
		return
	}

	records, err := h.workers.ListPayrollForWorker(worker.ID)
	if err != nil {
		h.logger.Error("list payroll records", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list payroll records")
		return
	}
	if records == nil {
		records = []model.PayrollRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *WorkerHandler) UpdatePayroll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.workers.GetPayrollForUser(id, userID)
	if err != nil {
		h.logger.Error("get payroll record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get payroll record")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "payroll record not found")
		return
	}

	var req payrollRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	periodStart := existing.PeriodStart
	if req.PeriodStart != nil {
		periodStart = *req.PeriodStart
	}
	periodEnd := existing.PeriodEnd
	if req.PeriodEnd != nil {
		periodEnd = *req.PeriodEnd
	}
	if !periodEnd.After(periodStart) {
		writeError(w, http.StatusBadRequest, "period_end must be after period_start")
		return
	}
	hours := existing.HoursHundredths
	if req.HoursHundredths != 0 {
		hours = req.HoursHundredths
	}
	amount := existing.AmountCents
	if req.AmountCents != 0 {
		amount = req.AmountCents
	}
	if hours < 0 || amount < 0 {
		writeError(w, http.StatusBadRequest, "hours and amount must not be negative")
		return
	}

	record, err := h.workers.UpdatePayroll(id, userID, periodStart, periodEnd, hours, amount)
	if err != nil {
		h.logger.Error("update payroll record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update payroll record")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *WorkerHandler) MarkPayrollPaid(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.workers.GetPayrollForUser(id, userID)
	if err != nil {
		h.logger.Error("get payroll record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get payroll record")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "payroll record not found")
		return
	}

	record, err := h.workers.MarkPayrollPaid(id, userID)
	if err != nil {
		h.logger.Error("mark payroll paid", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to mark payroll record paid")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *WorkerHandler) DeletePayroll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.workers.GetPayrollForUser(id, userID)
	if err != nil {
		h.logger.Error("get payroll record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get payroll record")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "payroll record not found")
		return
	}

	if err := h.workers.DeletePayroll(id, userID); err != nil {
		h.logger.Error("delete payroll record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete payroll record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
