package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casereach/intake-api/internal/entity"
	"github.com/casereach/intake-api/internal/infra/crypto"
	"github.com/casereach/intake-api/internal/infra/http/middleware"
	"github.com/casereach/intake-api/internal/usecase"
)

const testAPIKey = "test-admin-key"

func newAdminRouter(t *testing.T, repo entity.LeadRepositoryInterface, codec *crypto.FieldCodec) http.Handler {
	t.Helper()
	handler := NewAdminHandler(usecase.NewLeadAdminUseCase(repo, codec))

	r := chi.NewRouter()
	r.Route("/admin/leads", func(r chi.Router) {
		r.Use(middleware.APIKey(testAPIKey))
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
		r.Patch("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r
}

func storedLead(t *testing.T, codec *crypto.FieldCodec, id, email, phone, status string) *entity.Lead {
	t.Helper()
	lead, err := codec.EncryptLead(entity.Lead{
		ID:        id,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Phone:     phone,
		Status:    status,
	})
	require.NoError(t, err)
	return &lead
}

func TestAdminRequiresAPIKey(t *testing.T) {
	router := newAdminRouter(t, new(MockLeadRepository), testCodec(t))

	req := httptest.NewRequest("GET", "/admin/leads", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/admin/leads", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminUnauthorizedBodyLeaksNothing(t *testing.T) {
	router := newAdminRouter(t, new(MockLeadRepository), testCodec(t))

	req := httptest.NewRequest("GET", "/admin/leads", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, map[string]string{"error": "unauthorized"}, body)
}

func TestAdminListFilteredByStatusReturnsPlaintext(t *testing.T) {
	codec := testCodec(t)

	mockRepo := new(MockLeadRepository)
	mockRepo.On("List", mock.Anything, entity.LeadFilter{Status: entity.StatusNew}).Return([]*entity.Lead{
		storedLead(t, codec, "lead-1", "jane@example.com", "5551234567", entity.StatusNew),
		storedLead(t, codec, "lead-2", "john@example.com", "5559876543", entity.StatusNew),
	}, nil)

	router := newAdminRouter(t, mockRepo, codec)

	req := httptest.NewRequest("GET", "/admin/leads?status=new", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response listLeadsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, 2, response.Count)

	for _, lead := range response.Leads {
		assert.Equal(t, entity.StatusNew, lead.Status)
		// Human-readable plaintext, not envelope strings.
		assert.NotContains(t, lead.Email, ":")
		assert.NotContains(t, lead.Phone, ":")
	}
	assert.Equal(t, "jane@example.com", response.Leads[0].Email)
}

func TestAdminListPassesPagination(t *testing.T) {
	codec := testCodec(t)

	mockRepo := new(MockLeadRepository)
	expected := entity.LeadFilter{Status: "", PracticeArea: "personal_injury", Limit: 10, Offset: 20}
	mockRepo.On("List", mock.Anything, expected).Return([]*entity.Lead{}, nil)

	router := newAdminRouter(t, mockRepo, codec)

	req := httptest.NewRequest("GET", "/admin/leads?practiceArea=personal_injury&limit=10&offset=20", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertCalled(t, "List", mock.Anything, expected)
}

func TestAdminGetDecryptsLead(t *testing.T) {
	codec := testCodec(t)

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, "lead-1").
		Return(storedLead(t, codec, "lead-1", "jane@example.com", "5551234567", entity.StatusNew), nil)

	router := newAdminRouter(t, mockRepo, codec)

	req := httptest.NewRequest("GET", "/admin/leads/lead-1", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var lead entity.Lead
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lead))
	assert.Equal(t, "jane@example.com", lead.Email)
	assert.Equal(t, "5551234567", lead.Phone)
}

func TestAdminGetNotFound(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

	router := newAdminRouter(t, mockRepo, testCodec(t))

	req := httptest.NewRequest("GET", "/admin/leads/missing", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminUpdateStatus(t *testing.T) {
	codec := testCodec(t)

	status := entity.StatusQualified
	expectedPatch := entity.LeadPatch{Status: &status}

	updated := storedLead(t, codec, "lead-1", "jane@example.com", "5551234567", entity.StatusQualified)

	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpdateAdminFields", mock.Anything, "lead-1", expectedPatch).Return(updated, nil)

	router := newAdminRouter(t, mockRepo, codec)

	body, _ := json.Marshal(map[string]string{"status": "qualified"})
	req := httptest.NewRequest("PATCH", "/admin/leads/lead-1", bytes.NewReader(body))
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var lead entity.Lead
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lead))
	assert.Equal(t, entity.StatusQualified, lead.Status)
	// The patched record comes back decrypted like every other admin read.
	assert.Equal(t, "jane@example.com", lead.Email)
}

func TestAdminUpdateRejectsUnknownStatus(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	router := newAdminRouter(t, mockRepo, testCodec(t))

	body, _ := json.Marshal(map[string]string{"status": "vaporized"})
	req := httptest.NewRequest("PATCH", "/admin/leads/lead-1", bytes.NewReader(body))
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "UpdateAdminFields")
}

func TestAdminUpdateNotFound(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpdateAdminFields", mock.Anything, "missing", mock.Anything).
		Return(nil, entity.ErrLeadNotFound)

	router := newAdminRouter(t, mockRepo, testCodec(t))

	body, _ := json.Marshal(map[string]string{"status": "qualified"})
	req := httptest.NewRequest("PATCH", "/admin/leads/missing", bytes.NewReader(body))
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminDeleteLead(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Delete", mock.Anything, "lead-1").Return(nil)

	router := newAdminRouter(t, mockRepo, testCodec(t))

	req := httptest.NewRequest("DELETE", "/admin/leads/lead-1", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response deleteLeadResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "lead-1", response.DeletedID)
}

func TestAdminDeleteNotFound(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Delete", mock.Anything, "missing").Return(entity.ErrLeadNotFound)

	router := newAdminRouter(t, mockRepo, testCodec(t))

	req := httptest.NewRequest("DELETE", "/admin/leads/missing", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
