package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/api"
	"github.com/themizzi/shopcheck/internal/models"
	"github.com/themizzi/shopcheck/internal/services"
)

// maxFormMemory bounds the multipart form kept in memory
const maxFormMemory = 1 << 20

// messageResponse is the body of API replies that carry only a message
type messageResponse struct {
	ResponseCode int    `json:"responseCode"`
	Message      string `json:"message"`
}

// accountFields are the fields /createAccount requires, in the order they
// are reported missing
var accountFields = []string{
	"name", "email", "password", "title", "birth_date", "birth_month", "birth_year",
	"firstname", "lastname", "company", "address1", "address2", "country",
	"zipcode", "state", "city", "mobile_number",
}

// APIHandler serves the JSON practice API. Every reply is HTTP 200; the
// outcome is in the responseCode field.
type APIHandler struct {
	catalog  services.CatalogService
	accounts services.AccountService
	logger   *zap.Logger
	router   chi.Router
}

// NewAPIHandler creates the API handler and its routes
func NewAPIHandler(catalog services.CatalogService, accounts services.AccountService, logger *zap.Logger) *APIHandler {
	h := &APIHandler{
		catalog:  catalog,
		accounts: accounts,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.HandleFunc("/productsList", h.productsList)
	r.HandleFunc("/brandsList", h.brandsList)
	r.HandleFunc("/searchProduct", h.searchProduct)
	r.HandleFunc("/verifyLogin", h.verifyLogin)
	r.HandleFunc("/createAccount", h.createAccount)
	r.HandleFunc("/deleteAccount", h.deleteAccount)
	r.HandleFunc("/updateAccount", h.updateAccount)
	r.HandleFunc("/getUserDetailByEmail", h.getUserDetailByEmail)
	h.router = r

	return h
}

// ServeHTTP dispatches to the API routes
func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *APIHandler) respond(w http.ResponseWriter, r *http.Request, code int, body any) {
	h.logger.Debug("api reply",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("responseCode", code),
	)
	writeJSON(w, http.StatusOK, body)
}

func (h *APIHandler) message(w http.ResponseWriter, r *http.Request, code int, msg string) {
	h.respond(w, r, code, messageResponse{ResponseCode: code, Message: msg})
}

func (h *APIHandler) notSupported(w http.ResponseWriter, r *http.Request) {
	h.message(w, r, http.StatusMethodNotAllowed, api.MsgMethodNotSupported)
}

// readForm collects the request's form fields whatever the method. The
// standard parser ignores DELETE bodies, so those are decoded here.
func readForm(r *http.Request) (url.Values, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	form := url.Values{}
	for k, v := range r.Form {
		form[k] = v
	}

	if r.Method == http.MethodDelete && r.Body != nil {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct == "" || ct == "application/x-www-form-urlencoded" {
			raw, err := io.ReadAll(io.LimitReader(r.Body, maxFormMemory))
			if err != nil {
				return nil, fmt.Errorf("failed to read body: %w", err)
			}
			body, err := url.ParseQuery(string(raw))
			if err != nil {
				return nil, fmt.Errorf("failed to parse body: %w", err)
			}
			for k, v := range body {
				form[k] = append(form[k], v...)
			}
		}
	}
	return form, nil
}

func has(form url.Values, key string) bool {
	_, ok := form[key]
	return ok
}

// first returns the first non-empty value among keys
func first(form url.Values, keys ...string) string {
	for _, k := range keys {
		if v := form.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// accountFromForm maps the account form to a profile. Both the API field
// names and the signup page names are accepted.
func accountFromForm(form url.Values) models.Account {
	return models.Account{
		Name:         form.Get("name"),
		Email:        form.Get("email"),
		Title:        form.Get("title"),
		BirthDay:     first(form, "birth_date", "days"),
		BirthMonth:   first(form, "birth_month", "months"),
		BirthYear:    first(form, "birth_year", "years"),
		FirstName:    first(form, "firstname", "first_name"),
		LastName:     first(form, "lastname", "last_name"),
		Company:      form.Get("company"),
		Address1:     form.Get("address1"),
		Address2:     form.Get("address2"),
		Country:      form.Get("country"),
		State:        form.Get("state"),
		City:         form.Get("city"),
		Zipcode:      form.Get("zipcode"),
		MobileNumber: form.Get("mobile_number"),
	}
}

func apiProducts(products []models.Product) []api.Product {
	out := make([]api.Product, 0, len(products))
	for _, p := range products {
		out = append(out, api.Product{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.DisplayPrice(),
			Brand: p.Brand,
			Category: api.ProductCategory{
				UserType: api.UserType{UserType: string(p.Category.UserType)},
				Category: p.Category.Name,
			},
		})
	}
	return out
}

func userDetail(a *models.Account) *api.UserDetail {
	return &api.UserDetail{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Title:      a.Title,
		BirthDay:   a.BirthDay,
		BirthMonth: a.BirthMonth,
		BirthYear:  a.BirthYear,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Company:    a.Company,
		Address1:   a.Address1,
		Address2:   a.Address2,
		Country:    a.Country,
		State:      a.State,
		City:       a.City,
		Zipcode:    a.Zipcode,
	}
}

func (h *APIHandler) productsList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.notSupported(w, r)
		return
	}
	h.respond(w, r, http.StatusOK, api.ProductsResponse{
		ResponseCode: http.StatusOK,
		Products:     apiProducts(h.catalog.ListProducts()),
	})
}

func (h *APIHandler) brandsList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.notSupported(w, r)
		return
	}
	brands := h.catalog.ListBrands()
	out := make([]api.Brand, 0, len(brands))
	for _, b := range brands {
		out = append(out, api.Brand{ID: b.ID, Brand: b.Name})
	}
	h.respond(w, r, http.StatusOK, api.BrandsResponse{ResponseCode: http.StatusOK, Brands: out})
}

func (h *APIHandler) searchProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.notSupported(w, r)
		return
	}
	form, err := readForm(r)
	if err != nil || !has(form, "search_product") {
		h.message(w, r, http.StatusBadRequest, api.MsgSearchParamMissing)
		return
	}
	h.respond(w, r, http.StatusOK, api.ProductsResponse{
		ResponseCode: http.StatusOK,
		Products:     apiProducts(h.catalog.SearchProducts(form.Get("search_product"))),
	})
}

func (h *APIHandler) verifyLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.notSupported(w, r)
		return
	}
	form, err := readForm(r)
	if err != nil || !has(form, "email") || !has(form, "password") {
		h.message(w, r, http.StatusBadRequest, api.MsgLoginParamMissing)
		return
	}
	if _, err := h.accounts.VerifyLogin(form.Get("email"), form.Get("password")); err != nil {
		h.message(w, r, http.StatusNotFound, api.MsgLoginIncorrect)
		return
	}
	h.message(w, r, http.StatusOK, api.MsgUserExists)
}

func (h *APIHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.notSupported(w, r)
		return
	}
	form, err := readForm(r)
	if err != nil {
		h.message(w, r, http.StatusBadRequest, err.Error())
		return
	}
	for _, field := range accountFields {
		if !has(form, field) {
			h.message(w, r, http.StatusBadRequest, fmt.Sprintf("Bad request, %s parameter is missing in POST request.", field))
			return
		}
	}

	_, err = h.accounts.CreateAccount(accountFromForm(form), form.Get("password"))
	switch {
	case errors.Is(err, models.ErrAccountExists):
		h.message(w, r, http.StatusBadRequest, api.MsgEmailAlreadyExists)
	case err != nil:
		h.message(w, r, http.StatusBadRequest, err.Error())
	default:
		h.message(w, r, http.StatusCreated, api.MsgUserCreated)
	}
}

func (h *APIHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		h.notSupported(w, r)
		return
	}
	form, err := readForm(r)
	if err != nil || !has(form, "email") || !has(form, "password") {
		h.message(w, r, http.StatusBadRequest, strings.Replace(api.MsgLoginParamMissing, "POST", "DELETE", 1))
		return
	}
	if err := h.accounts.DeleteAccount(form.Get("email"), form.Get("password")); err != nil {
		h.message(w, r, http.StatusNotFound, api.MsgAccountNotFound)
		return
	}
	h.message(w, r, http.StatusOK, api.MsgAccountDeleted)
}

func (h *APIHandler) updateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		h.notSupported(w, r)
		return
	}
	form, err := readForm(r)
	if err != nil || !has(form, "email") || !has(form, "password") {
		h.message(w, r, http.StatusBadRequest, strings.Replace(api.MsgLoginParamMissing, "POST", "PUT", 1))
		return
	}
	if _, err := h.accounts.UpdateAccount(form.Get("email"), form.Get("password"), accountFromForm(form)); err != nil {
		h.message(w, r, http.StatusNotFound, api.MsgAccountNotFound)
		return
	}
	h.message(w, r, http.StatusOK, api.MsgUserUpdated)
}

func (h *APIHandler) getUserDetailByEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.notSupported(w, r)
		return
	}
	email := r.URL.Query().Get("email")
	if !r.URL.Query().Has("email") {
		h.message(w, r, http.StatusBadRequest, "Bad request, email parameter is missing in GET request.")
		return
	}
	account, err := h.accounts.GetAccountByEmail(email)
	if err != nil {
		h.message(w, r, http.StatusNotFound, api.MsgUserNotFoundByEmail)
		return
	}
	h.respond(w, r, http.StatusOK, api.UserResponse{ResponseCode: http.StatusOK, User: userDetail(account)})
}
