package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/media-share/pkg/mediashare"
)

// maxAssetSize caps the in-memory portion of a multipart upload
const maxAssetSize = 32 << 20 // 32 MB

// ItemsHandler handles HTTP requests for items
type ItemsHandler struct {
	service mediashare.Service
	auth    *jwtauth.JWTAuth
}

// NewItemsHandler creates a new items handler
func NewItemsHandler(service mediashare.Service, auth *jwtauth.JWTAuth) *ItemsHandler {
	return &ItemsHandler{
		service: service,
		auth:    auth,
	}
}

// Routes returns the routes for items. Reads are public; publishing,
// editing, and deleting require a verified requester token.
func (h *ItemsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{itemID}", h.GetItem)
	r.Get("/{itemID}/asset", h.DownloadAsset)
	r.Get("/account/{accountID}", h.ListItemsByAccount)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.auth))
		r.Use(jwtauth.Authenticator)

		r.Post("/", h.CreateItem)
		r.Patch("/{itemID}", h.UpdateItem)
		r.Delete("/{itemID}", h.DeleteItem)
	})

	return r
}

// ItemResponse is the response body for an item
type ItemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssetKey    string    `json:"asset_key"`
	MimeType    string    `json:"mime_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateItemRequest is the request body for updating an item
type UpdateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toItemResponse(item *mediashare.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID.String(),
		OwnerID:     item.OwnerID.String(),
		Title:       item.Title,
		Description: item.Description,
		AssetKey:    item.AssetKey,
		MimeType:    item.MimeType,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// writeServiceError maps service errors to HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case mediashare.IsValidation(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case mediashare.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CreateItem publishes a new item. Expects a multipart form with "title"
// and "description" fields and the uploaded file under "asset". The
// requester from the verified token becomes the owner.
func (h *ItemsHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterID(r)
	if err != nil {
		http.Error(w, "Invalid requester identity", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxAssetSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("asset")
	if err != nil {
		http.Error(w, "Missing asset file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	req := mediashare.CreateItemRequest{
		OwnerID:     requester,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Asset:       file,
		FileName:    header.Filename,
		MimeType:    header.Header.Get("Content-Type"),
	}

	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create item", "owner_id", requester, "error", err)
		writeServiceError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toItemResponse(item))
}

// GetItem retrieves a single item by ID
func (h *ItemsHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	render.JSON(w, r, toItemResponse(item))
}

// ListItemsByAccount retrieves all items owned by an account
func (h *ItemsHandler) ListItemsByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		http.Error(w, "Invalid account ID", http.StatusBadRequest)
		return
	}

	items, err := h.service.ListItemsByOwner(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}

	render.JSON(w, r, resp)
}

// UpdateItem changes an item's title and description. Only the owner may
// edit; ownership and the asset reference never change here.
func (h *ItemsHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterID(r)
	if err != nil {
		http.Error(w, "Invalid requester identity", http.StatusUnauthorized)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if item.OwnerID != requester {
		http.Error(w, "You are not allowed to edit this item", http.StatusForbidden)
		return
	}

	var req UpdateItemRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateItem(r.Context(), mediashare.UpdateItemRequest{
		ItemID:      itemID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("Failed to update item", "item_id", itemID, "error", err)
		writeServiceError(w, err)
		return
	}

	render.JSON(w, r, toItemResponse(updated))
}

// DeleteItem removes an item, its ownership record, and its stored asset.
// Only the owner may delete.
func (h *ItemsHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterID(r)
	if err != nil {
		http.Error(w, "Invalid requester identity", http.StatusUnauthorized)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if item.OwnerID != requester {
		http.Error(w, "You are not allowed to delete this item", http.StatusForbidden)
		return
	}

	if err := h.service.DeleteItem(r.Context(), itemID); err != nil {
		slog.Error("Failed to delete item", "item_id", itemID, "error", err)
		writeServiceError(w, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "Deleted item."})
}

// DownloadAsset streams the item's stored asset
func (h *ItemsHandler) DownloadAsset(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	reader, err := h.service.DownloadAsset(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer reader.Close()

	if item.MimeType != "" {
		w.Header().Set("Content-Type", item.MimeType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}

	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("Failed to stream asset", "item_id", itemID, "error", err)
	}
}
