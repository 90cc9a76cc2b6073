package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/email"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/payments"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
)

var validBillingStatuses = map[string]bool{
	model.BillingStatusDraft: true,
	model.BillingStatusSent:  true,
	model.BillingStatusPaid:  true,
}

type ClientHandler struct {
	clients     *store.ClientStore
	billing     *store.BillingStore
	payments    *payments.Client
	emailClient *email.Client
	logger      *slog.Logger
}

func NewClientHandler(cs *store.ClientStore, bs *store.BillingStore, pc *payments.Client, ec *email.Client, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{clients: cs, billing: bs, payments: pc, emailClient: ec, logger: logger}
}

type clientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	client, err := h.clients.Create(auth.UserID(r.Context()), req.Name, req.Email, req.Company, req.Notes)
	if err != nil {
		h.logger.Error("create client", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create client")
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list clients", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}
	if clients == nil {
		clients = []model.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	client, err := h.clients.GetForUser(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get client")
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.clients.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get client")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	var req clientRequest
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
	if req.Company == "" {
		req.Company = existing.Company
	}
	if req.Notes == "" {
		req.Notes = existing.Notes
	}

	client, err := h.clients.Update(id, userID, req.Name, req.Email, req.Company, req.Notes)
	if err != nil {
		h.logger.Error("update client", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update client")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.clients.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get client")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	if err := h.clients.Delete(id, userID); err != nil {
		h.logger.Error("delete client", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Billing timeline ---

type billingRequest struct {
	Title       string     `json:"title"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	EntryDate   *time.Time `json:"entry_date"`
	Notes       string     `json:"notes"`
}

func (h *ClientHandler) CreateBilling(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	client, err := h.clients.GetForUser(clientID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get client")
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	var req billingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.AmountCents < 0 {
		writeError(w, http.StatusBadRequest, "amount_cents must not be negative")
		return
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}
	if req.Status == "" {
		req.Status = model.BillingStatusDraft
	}
	if !validBillingStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "status must be draft, sent, or paid")
		return
	}
	entryDate := time.Now().UTC()
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	entry, err := h.billing.Create(client.ID, req.Title, req.AmountCents, req.Currency, req.Status, entryDate, req.Notes)
	if err != nil {
		h.logger.Error("create billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create billing entry")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ListBilling returns the client's billing timeline, newest first.
func (h *ClientHandler) ListBilling(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	client, err := h.clients.GetForUser(clientID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get client", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get client")
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	entries, err := h.billing.ListForClient(client.ID)
	if err != nil {
		h.logger.Error("list billing entries", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list billing entries")
		return
	}
	if entries == nil {
		entries = []model.BillingEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ClientHandler) UpdateBilling(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.billing.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get billing entry")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "billing entry not found")
		return
	}

	var req billingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		req.Title = existing.Title
	}
	if req.AmountCents == 0 {
		req.AmountCents = existing.AmountCents
	}
	if req.AmountCents < 0 {
		writeError(w, http.StatusBadRequest, "amount_cents must not be negative")
		return
	}
	if req.Currency == "" {
		req.Currency = existing.Currency
	}
	if req.Status == "" {
		req.Status = existing.Status
	}
	if !validBillingStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "status must be draft, sent, or paid")
		return
	}
	entryDate := existing.EntryDate
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}
	if req.Notes == "" {
		req.Notes = existing.Notes
	}

	entry, err := h.billing.Update(id, userID, req.Title, req.AmountCents, req.Currency, req.Status, entryDate, req.Notes)
	if err != nil {
		h.logger.Error("update billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update billing entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *ClientHandler) DeleteBilling(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.billing.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get billing entry")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "billing entry not found")
		return
	}

	if err := h.billing.Delete(id, userID); err != nil {
		h.logger.Error("delete billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete billing entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PaymentLink creates a hosted checkout page for a billing entry and stores
// its URL on the entry.
func (h *ClientHandler) PaymentLink(w http.ResponseWriter, r *http.Request) {
	if h.payments == nil || !h.payments.Configured() {
		writeError(w, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	entry, err := h.billing.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get billing entry")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "billing entry not found")
		return
	}

	client, err := h.clients.GetForUser(entry.ClientID, userID)
	if err != nil || client == nil {
		h.logger.Error("get client for billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get client")
		return
	}

	url, err := h.payments.PaymentLink(entry, client.Email)
	if err != nil {
		h.logger.Error("create payment link", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create payment link")
		return
	}

	updated, err := h.billing.SetPaymentURL(id, userID, url)
	if err != nil {
		h.logger.Error("store payment link", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store payment link")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// SendBilling emails the invoice to the client and marks the entry sent.
func (h *ClientHandler) SendBilling(w http.ResponseWriter, r *http.Request) {
	if h.emailClient == nil || !h.emailClient.Configured() {
		writeError(w, http.StatusServiceUnavailable, "email is not configured")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	entry, err := h.billing.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get billing entry")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "billing entry not found")
		return
	}

	client, err := h.clients.GetForUser(entry.ClientID, userID)
	if err != nil || client == nil {
		h.logger.Error("get client for billing entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get client")
		return
	}
	if client.Email == "" {
		writeError(w, http.StatusBadRequest, "client has no email address")
		return
	}

	if err := h.emailClient.SendInvoice(client.Email, client.Name, entry); err != nil {
		h.logger.Error("send invoice", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to send invoice")
		return
	}

	updated, err := h.billing.SetStatus(id, userID, model.BillingStatusSent)
	if err != nil {
		h.logger.Error("mark invoice sent", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update billing entry")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
