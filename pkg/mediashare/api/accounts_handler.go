package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/media-share/pkg/mediashare"
)

// AccountsHandler handles HTTP requests for accounts
type AccountsHandler struct {
	service mediashare.Service
}

// NewAccountsHandler creates a new accounts handler
func NewAccountsHandler(service mediashare.Service) *AccountsHandler {
	return &AccountsHandler{service: service}
}

// Routes returns the routes for accounts
func (h *AccountsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.RegisterAccount)
	r.Get("/", h.ListAccounts)
	r.Get("/{accountID}", h.GetAccount)

	return r
}

// RegisterAccountRequest is the request body for registering an account
type RegisterAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AccountResponse is the response body for an account
type AccountResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	OwnedItems []string  `json:"owned_items"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toAccountResponse(account *mediashare.Account) AccountResponse {
	ownedItems := make([]string, 0, len(account.OwnedItems))
	for _, id := range account.OwnedItems {
		ownedItems = append(ownedItems, id.String())
	}
	return AccountResponse{
		ID:         account.ID.String(),
		Name:       account.Name,
		Email:      account.Email,
		OwnedItems: ownedItems,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
}

// RegisterAccount creates a new account
func (h *AccountsHandler) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	var req RegisterAccountRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.service.RegisterAccount(r.Context(), mediashare.RegisterAccountRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		slog.Error("Failed to register account", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAccountResponse(account))
}

// GetAccount retrieves a single account by ID
func (h *AccountsHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		http.Error(w, "Invalid account ID", http.StatusBadRequest)
		return
	}

	account, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	render.JSON(w, r, toAccountResponse(account))
}

// ListAccounts retrieves all accounts
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, toAccountResponse(account))
	}

	render.JSON(w, r, resp)
}
