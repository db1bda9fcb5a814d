package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/media-share/pkg/mediashare"
	"github.com/tendant/media-share/pkg/mediashare/repo/memory"
	memorystorage "github.com/tendant/media-share/pkg/mediashare/storage/memory"
)

func setupAccountsHandlerTest(t *testing.T) (http.Handler, mediashare.Service) {
	service, err := mediashare.New(
		mediashare.WithRepository(memory.New()),
		mediashare.WithBlobStore(memorystorage.New()),
	)
	require.NoError(t, err)

	handler := NewAccountsHandler(service)
	router := chi.NewRouter()
	router.Mount("/", handler.Routes())
	return router, service
}

func TestAccountsHandler_RegisterAccount(t *testing.T) {
	router, _ := setupAccountsHandlerTest(t)

	body, err := json.Marshal(RegisterAccountRequest{
		Name:  "alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp AccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice", resp.Name)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Empty(t, resp.OwnedItems)
}

func TestAccountsHandler_RegisterAccount_InvalidBody(t *testing.T) {
	router, _ := setupAccountsHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountsHandler_GetAccount(t *testing.T) {
	router, service := setupAccountsHandlerTest(t)

	account, err := service.RegisterAccount(context.Background(), mediashare.RegisterAccountRequest{
		Name:  "alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/"+account.ID.String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp AccountResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, account.ID.String(), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAccountsHandler_ListAccounts(t *testing.T) {
	router, service := setupAccountsHandlerTest(t)

	for _, name := range []string{"alice", "bob"} {
		_, err := service.RegisterAccount(context.Background(), mediashare.RegisterAccountRequest{
			Name:  name,
			Email: name + "@example.com",
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []AccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
