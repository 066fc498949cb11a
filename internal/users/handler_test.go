package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bissquit/user-registry/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorResponse struct {
	Error struct {
		Message string            `json:"message"`
		Details []json.RawMessage `json:"details"`
	} `json:"error"`
}

func newTestRouter(repo Repository) http.Handler {
	r := chi.NewRouter()
	NewHandler(NewService(repo, parseHexID)).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeUsers(t *testing.T, rec *httptest.ResponseRecorder) []domain.User {
	t.Helper()
	var users []domain.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	return users
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandler_ListUsers_All(t *testing.T) {
	repo := newSeededRepository()
	rec := doRequest(t, newTestRouter(repo), http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeUsers(t, rec), len(repo.users))
	assert.True(t, repo.lastFilter.IsEmpty())
}

func TestHandler_ListUsers_Age37(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users?age=37", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeUsers(t, rec), 2)
}

func TestHandler_ListUsers_NonNumericAge(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users?age=bad", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(t, rec).Error.Message, "age must be an integer")
}

func TestHandler_ListUsers_Company(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users?company=OHMNET", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	users := decodeUsers(t, rec)
	require.NotEmpty(t, users)
	for _, u := range users {
		assert.Equal(t, "OHMNET", u.Company)
	}
}

func TestHandler_ListUsers_Role(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users?role=viewer", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeUsers(t, rec), 2)
}

func TestHandler_ListUsers_CompanyAndAge(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users?company=OHMNET&age=37", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	users := decodeUsers(t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, "OHMNET", users[0].Company)
	assert.Equal(t, 37, users[0].Age)
}

func TestHandler_ListUsers_NoMatchIsEmptyArray(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users?role=admin&company=IBM", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_GetUser_Existing(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users/"+samsID, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var user domain.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "Sam", user.Name)
	assert.Equal(t, samsID, user.ID)
}

func TestHandler_GetUser_UsesMongoFieldName(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users/"+samsID, "")

	var raw map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.Equal(t, samsID, raw["_id"])
}

func TestHandler_GetUser_BadID(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users/bad", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "The requested user id wasn't a legal Mongo Object ID.", decodeErrorResponse(t, rec).Error.Message)
}

func TestHandler_GetUser_NonexistentID(t *testing.T) {
	rec := doRequest(t, newTestRouter(newSeededRepository()), http.MethodGet, "/users/588935f5c668650dc77df581", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "The requested user was not found", decodeErrorResponse(t, rec).Error.Message)
}

func TestHandler_CreateUser(t *testing.T) {
	repo := newMockRepository()
	body := `{"name":"Test User","age":25,"company":"testers","email":"test@example.com","role":"viewer"}`

	rec := doRequest(t, newTestRouter(repo), http.MethodPost, "/users", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var user domain.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, 25, user.Age)
	assert.Equal(t, "testers", user.Company)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, domain.RoleViewer, user.Role)
	assert.NotEmpty(t, user.Avatar)
	assert.Len(t, repo.users, 1)
}

func TestHandler_CreateUser_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "invalid email",
			body:      `{"name":"Test User","age":25,"company":"testers","email":"invalidemail","role":"viewer"}`,
			wantField: "email",
		},
		{
			name: "non-numeric age",
			body: `{"name":"Test User","age":"notanumber","company":"testers","email":"test@example.com","role":"viewer"}`,
		},
		{
			name:      "zero age",
			body:      `{"name":"Test User","age":0,"company":"testers","email":"test@example.com","role":"viewer"}`,
			wantField: "age",
		},
		{
			name:      "missing name",
			body:      `{"age":25,"company":"testers","email":"test@example.com","role":"viewer"}`,
			wantField: "name",
		},
		{
			name:      "empty name",
			body:      `{"name":"","age":25,"company":"testers","email":"test@example.com","role":"viewer"}`,
			wantField: "name",
		},
		{
			name:      "invalid role",
			body:      `{"name":"Test User","age":25,"company":"testers","email":"test@example.com","role":"invalidrole"}`,
			wantField: "role",
		},
		{
			name:      "missing company",
			body:      `{"name":"Test User","age":25,"email":"test@example.com","role":"viewer"}`,
			wantField: "company",
		},
		{
			name:      "empty company",
			body:      `{"name":"Test User","age":25,"company":"","email":"test@example.com","role":"viewer"}`,
			wantField: "company",
		},
		{
			name: "malformed json",
			body: `{"name":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			rec := doRequest(t, newTestRouter(repo), http.MethodPost, "/users", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, repo.users)

			if tt.wantField != "" {
				resp := decodeErrorResponse(t, rec)
				assert.Equal(t, "validation error", resp.Error.Message)
				found := false
				for _, d := range resp.Error.Details {
					if bytes.Contains(d, []byte(`"field":"`+tt.wantField+`"`)) {
						found = true
					}
				}
				assert.True(t, found, "expected a validation detail for %s", tt.wantField)
			}
		})
	}
}

func TestHandler_DeleteUser(t *testing.T) {
	repo := newSeededRepository()
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodDelete, "/users/"+samsID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted_id":"`+samsID+`"}`, rec.Body.String())
	assert.Len(t, repo.users, 3)

	rec = doRequest(t, router, http.MethodGet, "/users/"+samsID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/users/"+samsID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/users/bad", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
