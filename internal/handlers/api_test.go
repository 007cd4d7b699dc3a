package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/themizzi/shopcheck/internal/api"
	"github.com/themizzi/shopcheck/internal/models"
	"github.com/themizzi/shopcheck/internal/repository"
	"github.com/themizzi/shopcheck/internal/services"
)

func newTestAccounts(t *testing.T) services.AccountService {
	t.Helper()
	accounts := services.NewAccountService(repository.NewMemoryAccountRepository())
	_, err := accounts.CreateAccount(models.Account{Name: "Test User", Email: "user@example.com", City: "Mumbai"}, "secret")
	if err != nil {
		t.Fatalf("Failed to seed account: %v", err)
	}
	return accounts
}

func newTestAPI(t *testing.T) *APIHandler {
	t.Helper()
	return NewAPIHandler(services.NewDefaultCatalogService(), newTestAccounts(t), zaptest.NewLogger(t))
}

func fullAccountForm(email string) url.Values {
	form := url.Values{}
	for _, f := range accountFields {
		form.Set(f, "x")
	}
	form.Set("name", "New User")
	form.Set("email", email)
	form.Set("password", "pw")
	return form
}

func apiRequest(method, path string, form url.Values) *http.Request {
	var req *http.Request
	if form == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req
}

func TestAPIHandler_ResponseCodes(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		path        string
		form        url.Values
		wantCode    int
		wantMessage string
	}{
		{
			name:     "products list",
			method:   http.MethodGet,
			path:     "/productsList",
			wantCode: http.StatusOK,
		},
		{
			name:        "products list by POST",
			method:      http.MethodPost,
			path:        "/productsList",
			wantCode:    http.StatusMethodNotAllowed,
			wantMessage: api.MsgMethodNotSupported,
		},
		{
			name:        "brands list by PUT",
			method:      http.MethodPut,
			path:        "/brandsList",
			wantCode:    http.StatusMethodNotAllowed,
			wantMessage: api.MsgMethodNotSupported,
		},
		{
			name:        "search without parameter",
			method:      http.MethodPost,
			path:        "/searchProduct",
			form:        url.Values{},
			wantCode:    http.StatusBadRequest,
			wantMessage: api.MsgSearchParamMissing,
		},
		{
			name:        "verify login valid",
			method:      http.MethodPost,
			path:        "/verifyLogin",
			form:        url.Values{"email": {"user@example.com"}, "password": {"secret"}},
			wantCode:    http.StatusOK,
			wantMessage: api.MsgUserExists,
		},
		{
			name:        "verify login without email",
			method:      http.MethodPost,
			path:        "/verifyLogin",
			form:        url.Values{"password": {"secret"}},
			wantCode:    http.StatusBadRequest,
			wantMessage: api.MsgLoginParamMissing,
		},
		{
			name:        "verify login wrong password",
			method:      http.MethodPost,
			path:        "/verifyLogin",
			form:        url.Values{"email": {"user@example.com"}, "password": {"nope"}},
			wantCode:    http.StatusNotFound,
			wantMessage: api.MsgLoginIncorrect,
		},
		{
			name:        "verify login by DELETE",
			method:      http.MethodDelete,
			path:        "/verifyLogin",
			wantCode:    http.StatusMethodNotAllowed,
			wantMessage: api.MsgMethodNotSupported,
		},
		{
			name:        "create account",
			method:      http.MethodPost,
			path:        "/createAccount",
			form:        fullAccountForm("new@example.com"),
			wantCode:    http.StatusCreated,
			wantMessage: api.MsgUserCreated,
		},
		{
			name:        "create existing account",
			method:      http.MethodPost,
			path:        "/createAccount",
			form:        fullAccountForm("user@example.com"),
			wantCode:    http.StatusBadRequest,
			wantMessage: api.MsgEmailAlreadyExists,
		},
		{
			name:        "create account missing field",
			method:      http.MethodPost,
			path:        "/createAccount",
			form:        url.Values{"name": {"x"}},
			wantCode:    http.StatusBadRequest,
			wantMessage: "Bad request, email parameter is missing in POST request.",
		},
		{
			name:        "update account",
			method:      http.MethodPut,
			path:        "/updateAccount",
			form:        url.Values{"email": {"user@example.com"}, "password": {"secret"}, "city": {"Pune"}},
			wantCode:    http.StatusOK,
			wantMessage: api.MsgUserUpdated,
		},
		{
			name:        "update unknown account",
			method:      http.MethodPut,
			path:        "/updateAccount",
			form:        url.Values{"email": {"ghost@example.com"}, "password": {"secret"}},
			wantCode:    http.StatusNotFound,
			wantMessage: api.MsgAccountNotFound,
		},
		{
			name:        "delete account",
			method:      http.MethodDelete,
			path:        "/deleteAccount",
			form:        url.Values{"email": {"user@example.com"}, "password": {"secret"}},
			wantCode:    http.StatusOK,
			wantMessage: api.MsgAccountDeleted,
		},
		{
			name:        "delete unknown account",
			method:      http.MethodDelete,
			path:        "/deleteAccount",
			form:        url.Values{"email": {"ghost@example.com"}, "password": {"secret"}},
			wantCode:    http.StatusNotFound,
			wantMessage: api.MsgAccountNotFound,
		},
		{
			name:        "user detail unknown email",
			method:      http.MethodGet,
			path:        "/getUserDetailByEmail?email=ghost@example.com",
			wantCode:    http.StatusNotFound,
			wantMessage: api.MsgUserNotFoundByEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAPI(t)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, apiRequest(tt.method, tt.path, tt.form))

			if w.Code != http.StatusOK {
				t.Errorf("expected HTTP 200, got %d", w.Code)
			}
			var body messageResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body.ResponseCode != tt.wantCode {
				t.Errorf("expected responseCode %d, got %d", tt.wantCode, body.ResponseCode)
			}
			if tt.wantMessage != "" && body.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, body.Message)
			}
		})
	}
}

func TestAPIHandler_ProductsList(t *testing.T) {
	handler := newTestAPI(t)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, apiRequest(http.MethodGet, "/productsList", nil))

	var body api.ProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Products) != len(services.DefaultProducts()) {
		t.Fatalf("expected %d products, got %d", len(services.DefaultProducts()), len(body.Products))
	}
	first := body.Products[0]
	if first.Name != "Blue Top" || first.Price != "Rs. 500" || first.Brand != "Polo" {
		t.Errorf("unexpected first product: %+v", first)
	}
	if first.Category.UserType.UserType != "Women" || first.Category.Category != "Tops" {
		t.Errorf("unexpected category: %+v", first.Category)
	}
}

func TestAPIHandler_SearchProduct(t *testing.T) {
	handler := newTestAPI(t)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, apiRequest(http.MethodPost, "/searchProduct", url.Values{"search_product": {"tshirt"}}))

	var body api.ProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.ResponseCode != http.StatusOK || len(body.Products) == 0 {
		t.Fatalf("expected matches, got %+v", body)
	}
	for _, p := range body.Products {
		if !strings.Contains(strings.ToLower(p.Name+" "+p.Category.Category+" "+p.Category.UserType.UserType), "tshirt") {
			t.Errorf("product %q does not match the term", p.Name)
		}
	}
}

func TestAPIHandler_BrandsList(t *testing.T) {
	handler := newTestAPI(t)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, apiRequest(http.MethodGet, "/brandsList", nil))

	var body api.BrandsResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Brands) != 8 {
		t.Errorf("expected 8 brands, got %d", len(body.Brands))
	}
}

func TestAPIHandler_GetUserDetailByEmail(t *testing.T) {
	handler := newTestAPI(t)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, apiRequest(http.MethodGet, "/getUserDetailByEmail?email=USER@example.com", nil))

	var body api.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.ResponseCode != http.StatusOK || body.User == nil {
		t.Fatalf("expected a user, got %+v", body)
	}
	if body.User.Email != "user@example.com" || body.User.City != "Mumbai" {
		t.Errorf("unexpected user: %+v", body.User)
	}
}

func TestAPIHandler_AccountLifecycle(t *testing.T) {
	handler := NewAPIHandler(services.NewDefaultCatalogService(),
		services.NewAccountService(repository.NewMemoryAccountRepository()), zaptest.NewLogger(t))

	steps := []struct {
		method   string
		path     string
		form     url.Values
		wantCode int
	}{
		{http.MethodPost, "/createAccount", fullAccountForm("life@example.com"), http.StatusCreated},
		{http.MethodPost, "/verifyLogin", url.Values{"email": {"life@example.com"}, "password": {"pw"}}, http.StatusOK},
		{http.MethodDelete, "/deleteAccount", url.Values{"email": {"life@example.com"}, "password": {"pw"}}, http.StatusOK},
		{http.MethodPost, "/verifyLogin", url.Values{"email": {"life@example.com"}, "password": {"pw"}}, http.StatusNotFound},
	}

	for i, step := range steps {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, apiRequest(step.method, step.path, step.form))

		var body messageResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("step %d: failed to decode response: %v", i, err)
		}
		if body.ResponseCode != step.wantCode {
			t.Errorf("step %d %s %s: expected %d, got %d (%s)", i, step.method, step.path, step.wantCode, body.ResponseCode, body.Message)
		}
	}
}
