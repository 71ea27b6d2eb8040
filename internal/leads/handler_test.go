package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	calls int
	last  *Lead
	err   error
}

func (n *recordingNotifier) NotifyLeadCreated(_ context.Context, lead *Lead) error {
	n.calls++
	n.last = lead
	return n.err
}

func newTestRouter(svc *Service) *chi.Mux {
	h := NewHandler(svc, nil)
	r := chi.NewRouter()
	r.Post("/api/leads", h.CreateLead)
	r.Get("/api/leads/{id}", h.GetLead)
	return r
}

func TestHandler_CreateLead(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(NewInMemoryRepository(), notifier, nil)
	router := newTestRouter(svc)

	body, _ := json.Marshal(validRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateLeadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "new", resp.Status)

	assert.Equal(t, 1, notifier.calls)
	require.NotNil(t, notifier.last)
	assert.Equal(t, resp.ID, notifier.last.ID)
}

func TestHandler_CreateLeadNotifyFailureStillSaves(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("ses down")}
	svc := NewService(NewInMemoryRepository(), notifier, nil)
	router := newTestRouter(svc)

	body, _ := json.Marshal(validRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, notifier.calls)
}

func TestHandler_CreateLeadRejectsInvalid(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil, nil)
	router := newTestRouter(svc)

	bad := validRequest()
	bad.Phone = "555"
	body, _ := json.Marshal(bad)
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateLeadBadJSON(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil, nil)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetLead(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil, nil)
	saved, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	router := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/leads/"+saved.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.Name)
}

func TestHandler_GetLeadNotFound(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil, nil)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/leads/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
