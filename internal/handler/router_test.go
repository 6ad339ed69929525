package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GoArmGo/ContactBook/internal/database/memory"
	"github.com/GoArmGo/ContactBook/internal/messaging/payloads"
	"github.com/GoArmGo/ContactBook/internal/usecase"
	"github.com/GoArmGo/ContactBook/internal/validation"
)

type capturedPublisher struct {
	published []payloads.ContactExportPayload
}

func (c *capturedPublisher) PublishContactExportRequest(_ context.Context, payload payloads.ContactExportPayload) error {
	c.published = append(c.published, payload)
	return nil
}

type nopFileStorage struct{}

func (nopFileStorage) UploadFile(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return key, nil
}

func (nopFileStorage) DeleteFile(context.Context, string) error { return nil }

type apiFixture struct {
	router    chi.Router
	publisher *capturedPublisher
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipeline := validation.NewPipeline()

	users := memory.NewUserStorage()
	addresses := memory.NewAddressStorage()
	contacts := memory.NewContactStorage(addresses)
	publisher := &capturedPublisher{}

	ownership := usecase.NewOwnershipResolver(contacts, addresses, logger)
	userUC := usecase.NewUserUseCase(users, pipeline, bcrypt.MinCost, logger)
	contactUC := usecase.NewContactUseCase(contacts, ownership, pipeline, logger)
	addressUC := usecase.NewAddressUseCase(addresses, ownership, pipeline, logger)
	exportUC := usecase.NewExportUseCase(contacts, addresses, publisher, nopFileStorage{}, logger)

	return &apiFixture{
		router:    NewRouter(userUC, contactUC, addressUC, exportUC, 5*time.Second, logger),
		publisher: publisher,
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Paging  *struct {
		CurrentPage int `json:"current_page"`
		Size        int `json:"size"`
		TotalPage   int `json:"total_page"`
	} `json:"paging"`
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "every response must be enveloped: %s", rec.Body.String())
	return rec, env
}

func (f *apiFixture) register(t *testing.T, username string) {
	t.Helper()
	rec, _ := f.do(t, http.MethodPost, "/v1/register", "", map[string]string{
		"username": username,
		"password": "secret",
		"name":     "Test " + username,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func (f *apiFixture) login(t *testing.T, username string) string {
	t.Helper()
	rec, env := f.do(t, http.MethodPost, "/v1/login", "", map[string]string{
		"username": username,
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func (f *apiFixture) createContact(t *testing.T, token, firstName string) int64 {
	t.Helper()
	rec, env := f.do(t, http.MethodPost, "/v1/contact", token, map[string]string{
		"first_name": firstName,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var data struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.ID
}

func TestAPI_RegisterConflict(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")

	rec, env := f.do(t, http.MethodPost, "/v1/register", "", map[string]string{
		"username": "john",
		"password": "other",
		"name":     "Second John",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, string(env.Errors), "Username is already taken")
}

func TestAPI_RegisterValidationListsAllViolations(t *testing.T) {
	f := newAPIFixture(t)

	rec, env := f.do(t, http.MethodPost, "/v1/register", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var violations []string
	require.NoError(t, json.Unmarshal(env.Errors, &violations))
	assert.Len(t, violations, 3)
}

func TestAPI_LoginFailureIsUniform(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")

	rec1, env1 := f.do(t, http.MethodPost, "/v1/login", "", map[string]string{
		"username": "john", "password": "wrong",
	})
	rec2, env2 := f.do(t, http.MethodPost, "/v1/login", "", map[string]string{
		"username": "ghost", "password": "secret",
	})

	assert.Equal(t, http.StatusBadRequest, rec1.Code)
	assert.Equal(t, rec1.Code, rec2.Code)
	assert.Equal(t, string(env1.Errors), string(env2.Errors))
	assert.Contains(t, string(env1.Errors), "Username or password is invalid")
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/user"},
		{http.MethodGet, "/v1/contacts"},
		{http.MethodGet, "/v1/contact/1"},
		{http.MethodGet, "/v1/contact/1/addresses"},
	}

	for _, p := range paths {
		rec, env := f.do(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
		assert.Contains(t, string(env.Errors), "Unauthorized")
	}

	rec, _ := f.do(t, http.MethodGet, "/v1/user", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "unknown token is as dead as a missing one")
}

func TestAPI_ReloginKillsOldToken(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")

	first := f.login(t, "john")
	second := f.login(t, "john")

	rec, _ := f.do(t, http.MethodGet, "/v1/user", first, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/v1/user", second, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_Logout(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	token := f.login(t, "john")

	rec, env := f.do(t, http.MethodDelete, "/v1/user", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout success", env.Message)

	rec, _ = f.do(t, http.MethodGet, "/v1/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_ContactLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	token := f.login(t, "john")

	contactID := f.createContact(t, token, "Alice")

	rec, env := f.do(t, http.MethodGet, fmt.Sprintf("/v1/contact/%d", contactID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Alice")

	rec, env = f.do(t, http.MethodPut, fmt.Sprintf("/v1/contact/%d", contactID), token, map[string]string{
		"first_name": "Alicia",
		"email":      "alicia@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Alicia")

	rec, env = f.do(t, http.MethodDelete, fmt.Sprintf("/v1/contact/%d", contactID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contact deleted successfully", env.Message)
	assert.Contains(t, string(env.Data), "Alicia", "delete returns the pre-delete snapshot")

	rec, env = f.do(t, http.MethodGet, fmt.Sprintf("/v1/contact/%d", contactID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, string(env.Errors), "Contact not found")
}

func TestAPI_CrossUserContactIs404(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	f.register(t, "jane")
	johnToken := f.login(t, "john")
	janeToken := f.login(t, "jane")

	contactID := f.createContact(t, johnToken, "Secret")

	rec, env := f.do(t, http.MethodGet, fmt.Sprintf("/v1/contact/%d", contactID), janeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "foreign contact must look absent, not forbidden")
	assert.Contains(t, string(env.Errors), "Contact not found")

	rec, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/v1/contact/%d", contactID), janeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// контакт жив и доступен владельцу
	rec, _ = f.do(t, http.MethodGet, fmt.Sprintf("/v1/contact/%d", contactID), johnToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_InvalidContactIDIs400(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	token := f.login(t, "john")

	rec, env := f.do(t, http.MethodGet, "/v1/contact/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Errors), "contactId: must be a positive integer")
}

func TestAPI_SearchPaging(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	token := f.login(t, "john")

	for i := 0; i < 12; i++ {
		f.createContact(t, token, fmt.Sprintf("Person%02d", i))
	}

	rec, env := f.do(t, http.MethodGet, "/v1/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Paging)
	assert.Equal(t, 1, env.Paging.CurrentPage)
	assert.Equal(t, 10, env.Paging.Size)
	assert.Equal(t, 2, env.Paging.TotalPage)

	rec, env = f.do(t, http.MethodGet, "/v1/contacts?page=2&size=10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)

	// за последней страницей items пустые, но total_page честный
	rec, env = f.do(t, http.MethodGet, "/v1/contacts?page=50", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Empty(t, items)
	assert.Equal(t, 2, env.Paging.TotalPage)

	rec, env = f.do(t, http.MethodGet, "/v1/contacts?page=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Errors), "page: must be a positive integer")
}

func TestAPI_SearchFilters(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	token := f.login(t, "john")

	_, _ = f.do(t, http.MethodPost, "/v1/contact", token, map[string]string{
		"first_name": "Anna", "last_name": "Smith", "email": "anna@work.com",
	})
	_, _ = f.do(t, http.MethodPost, "/v1/contact", token, map[string]string{
		"first_name": "Bob", "last_name": "Annafield", "email": "bob@home.org",
	})

	rec, env := f.do(t, http.MethodGet, "/v1/contacts?name=anna", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2, "name matches first OR last name")

	rec, env = f.do(t, http.MethodGet, "/v1/contacts?name=anna&email=work", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1, "filters combine with AND")
}

func TestAPI_AddressLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	token := f.login(t, "john")
	contactID := f.createContact(t, token, "Alice")

	base := fmt.Sprintf("/v1/contact/%d", contactID)

	rec, env := f.do(t, http.MethodPost, base+"/address", token, map[string]string{
		"street":      "Jalan Mawar 1",
		"city":        "Jakarta",
		"country":     "Indonesia",
		"postal_code": "12345",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = f.do(t, http.MethodGet, base+"/addresses", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)

	addressPath := fmt.Sprintf("%s/address/%d", base, created.ID)

	rec, env = f.do(t, http.MethodPut, addressPath, token, map[string]string{
		"country":     "Singapore",
		"postal_code": "654321",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Singapore")

	rec, env = f.do(t, http.MethodDelete, addressPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Address deleted successfully", env.Message)

	rec, env = f.do(t, http.MethodGet, addressPath, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, string(env.Errors), "Address not found")
}

func TestAPI_AddressUnderForeignContact(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	f.register(t, "jane")
	johnToken := f.login(t, "john")
	janeToken := f.login(t, "jane")

	contactID := f.createContact(t, johnToken, "Alice")
	rec, env := f.do(t, http.MethodPost, fmt.Sprintf("/v1/contact/%d/address", contactID), johnToken, map[string]string{
		"country": "Indonesia", "postal_code": "12345",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = f.do(t, http.MethodGet,
		fmt.Sprintf("/v1/contact/%d/address/%d", contactID, created.ID), janeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, string(env.Errors), "Contact not found",
		"the chain breaks on the contact, the address is never reached")
}

func TestAPI_MalformedJSONBody(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be valid JSON")
}

func TestAPI_ExportAccepted(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "john")
	token := f.login(t, "john")
	f.createContact(t, token, "Alice")

	rec, env := f.do(t, http.MethodPost, "/v1/contacts/export", token, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, string(env.Data), "object_key")

	require.Len(t, f.publisher.published, 1)
	assert.Contains(t, f.publisher.published[0].ObjectKey, "contact-exports/")
}
