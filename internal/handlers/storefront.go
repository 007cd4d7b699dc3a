package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/api"
	"github.com/themizzi/shopcheck/internal/models"
	"github.com/themizzi/shopcheck/internal/services"
)

// Messages the storefront pages show
const (
	MsgEmailAddressExists = "Email Address already exist!"
	MsgSubscribed         = "You have been successfully subscribed!"
)

// cartResponse is the body of the cart endpoints the page script calls
type cartResponse struct {
	ResponseCode int    `json:"responseCode"`
	Message      string `json:"message,omitempty"`
	Items        int    `json:"items"`
	LineTotal    string `json:"line_total,omitempty"`
	Total        string `json:"total"`
}

// StorefrontHandler serves the HTML pages and the cart endpoints behind them
type StorefrontHandler struct {
	catalog  services.CatalogService
	carts    services.CartService
	accounts services.AccountService
	sessions services.SessionService
	renderer *Renderer
	logger   *zap.Logger
	router   chi.Router
}

// NewStorefrontHandler creates the page handler and its routes
func NewStorefrontHandler(
	catalog services.CatalogService,
	carts services.CartService,
	accounts services.AccountService,
	sessions services.SessionService,
	logger *zap.Logger,
) (*StorefrontHandler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	h := &StorefrontHandler{
		catalog:  catalog,
		carts:    carts,
		accounts: accounts,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
	h.router = h.routes()
	return h, nil
}

func (h *StorefrontHandler) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(WithSession(h.sessions))

	r.Handle("/static/*", StaticHandler())
	r.Get("/", h.home)
	r.Get("/products", h.products)
	r.Get("/product_details/{id}", h.productDetails)
	r.Get("/category_products/{slug}", h.categoryProducts)
	r.Get("/brand_products/{brand}", h.brandProducts)

	r.Get("/view_cart", h.viewCart)
	r.Get("/checkout", h.checkout)
	r.Get("/add_to_cart/{id}", h.addToCart)
	r.Post("/add_to_cart/{id}", h.addToCart)
	r.Get("/delete_cart/{id}", h.deleteFromCart)
	r.Post("/delete_cart/{id}", h.deleteFromCart)
	r.Post("/update_cart/{id}", h.updateCart)

	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Post("/signup", h.signup)
	r.Post("/create_account", h.createAccount)
	r.Get("/logout", h.logout)
	r.Get("/delete_account", h.deleteAccount)
	r.Post("/subscribe", h.subscribe)

	r.Get("/contact_us", h.info("Contact Us", "Get In Touch", "contact-us"))
	r.Get("/test_cases", h.info("Test Cases", "Test Cases", "test-cases"))
	r.Get("/api_list", h.info("API Testing", "APIs List for practice", "api-list"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.message(w, r, http.StatusNotFound, "Page not found", "not-found")
	})
	return r
}

// ServeHTTP dispatches to the storefront routes
func (h *StorefrontHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// page starts the data for a page, filling in the logged-in user
func (h *StorefrontHandler) page(r *http.Request, title string) pageData {
	data := pageData{Title: title}
	if user, ok := h.sessions.CurrentUser(SessionID(r)); ok {
		data.User = &user
	}
	return data
}

// catalogPage is a page with the sidebar and a product grid
func (h *StorefrontHandler) catalogPage(r *http.Request, title, heading string, products []models.Product) pageData {
	data := h.page(r, title)
	data.Heading = heading
	data.Products = productViews(products)
	data.Categories = groupCategories(h.catalog.Categories())
	for _, b := range h.catalog.ListBrands() {
		data.Brands = append(data.Brands, brandView{Name: b.Name, Count: len(h.catalog.ProductsByBrand(b.Name))})
	}
	return data
}

func (h *StorefrontHandler) render(w http.ResponseWriter, status int, name string, data pageData) {
	if err := h.renderer.Render(w, status, name, data); err != nil {
		h.logger.Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *StorefrontHandler) message(w http.ResponseWriter, r *http.Request, status int, heading, qa string, paragraphs ...string) {
	data := h.page(r, heading)
	data.Heading = heading
	data.MessageQA = qa
	data.Paragraphs = paragraphs
	h.render(w, status, "message", data)
}

func (h *StorefrontHandler) info(title, heading, qa string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.message(w, r, http.StatusOK, heading, qa, title)
	}
}

func (h *StorefrontHandler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", h.catalogPage(r, "Automation Exercise", "Features Items", h.catalog.ListProducts()))
}

func (h *StorefrontHandler) products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("search") {
		h.render(w, http.StatusOK, "products", h.catalogPage(r, "Automation Exercise - All Products", "All Products", h.catalog.ListProducts()))
		return
	}

	term := query.Get("search")
	data := h.catalogPage(r, "Automation Exercise - All Products", "Searched Products", h.catalog.SearchProducts(term))
	data.Search = term
	h.render(w, http.StatusOK, "products", data)
}

func (h *StorefrontHandler) productDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.message(w, r, http.StatusNotFound, "Page not found", "not-found")
		return
	}
	product, err := h.catalog.GetProduct(id)
	if err != nil {
		h.message(w, r, http.StatusNotFound, "Page not found", "not-found")
		return
	}

	data := h.catalogPage(r, "Automation Exercise - Product Details", "", nil)
	data.Product = newProductView(product)
	h.render(w, http.StatusOK, "product_details", data)
}

func (h *StorefrontHandler) categoryProducts(w http.ResponseWriter, r *http.Request) {
	category, products, err := h.catalog.ProductsInCategory(chi.URLParam(r, "slug"))
	if err != nil {
		h.message(w, r, http.StatusNotFound, "Page not found", "not-found")
		return
	}
	heading := string(category.UserType) + " - " + category.Name + " Products"
	h.render(w, http.StatusOK, "products", h.catalogPage(r, "Automation Exercise - "+heading, heading, products))
}

func (h *StorefrontHandler) brandProducts(w http.ResponseWriter, r *http.Request) {
	brand, err := url.PathUnescape(chi.URLParam(r, "brand"))
	if err != nil {
		brand = chi.URLParam(r, "brand")
	}
	heading := "Brand - " + brand + " Products"
	h.render(w, http.StatusOK, "products", h.catalogPage(r, "Automation Exercise - "+heading, heading, h.catalog.ProductsByBrand(brand)))
}

func (h *StorefrontHandler) cartPage(w http.ResponseWriter, r *http.Request, name, title string) {
	cart := h.carts.GetCart(SessionID(r))
	data := h.page(r, title)
	data.Lines = lineViews(cart)
	data.Total = models.FormatPrice(cart.Total())
	h.render(w, http.StatusOK, name, data)
}

func (h *StorefrontHandler) viewCart(w http.ResponseWriter, r *http.Request) {
	h.cartPage(w, r, "cart", "Automation Exercise - Checkout")
}

func (h *StorefrontHandler) checkout(w http.ResponseWriter, r *http.Request) {
	if cart := h.carts.GetCart(SessionID(r)); cart.IsEmpty() {
		http.Redirect(w, r, "/view_cart", http.StatusFound)
		return
	}
	h.cartPage(w, r, "checkout", "Automation Exercise - Checkout")
}

// cartReply reports the cart after a change. line is the product whose line
// total the page should refresh.
func cartReply(w http.ResponseWriter, status int, cart models.Cart, line int, msg string) {
	resp := cartResponse{
		ResponseCode: status,
		Message:      msg,
		Items:        len(cart.Lines),
		Total:        models.FormatPrice(cart.Total()),
	}
	if l, ok := cart.Line(line); ok {
		resp.LineTotal = models.FormatPrice(l.Total())
	}
	writeJSON(w, status, resp)
}

// quantityParam reads the quantity form field; absent means 1
func quantityParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.FormValue("quantity"))
	if raw == "" {
		return 1, nil
	}
	return strconv.Atoi(raw)
}

func (h *StorefrontHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		cartReply(w, http.StatusNotFound, h.carts.GetCart(sid), 0, models.ErrProductNotFound.Error())
		return
	}
	quantity, err := quantityParam(r)
	if err != nil {
		cartReply(w, http.StatusBadRequest, h.carts.GetCart(sid), id, models.ErrInvalidQuantity.Error())
		return
	}

	cart, err := h.carts.AddProduct(sid, id, quantity)
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		cartReply(w, http.StatusNotFound, h.carts.GetCart(sid), id, err.Error())
	case err != nil:
		cartReply(w, http.StatusBadRequest, h.carts.GetCart(sid), id, err.Error())
	default:
		h.logger.Debug("added to cart", zap.String("session", sid), zap.Int("product", id), zap.Int("quantity", quantity))
		cartReply(w, http.StatusOK, cart, id, "Added")
	}
}

func (h *StorefrontHandler) deleteFromCart(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r)
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	cart, err := h.carts.RemoveProduct(sid, id)
	if err != nil {
		cartReply(w, http.StatusNotFound, h.carts.GetCart(sid), id, err.Error())
		return
	}
	cartReply(w, http.StatusOK, cart, id, "Removed")
}

func (h *StorefrontHandler) updateCart(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r)
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	quantity, err := quantityParam(r)
	if err != nil {
		cartReply(w, http.StatusBadRequest, h.carts.GetCart(sid), id, models.ErrInvalidQuantity.Error())
		return
	}

	cart, err := h.carts.UpdateQuantity(sid, id, quantity)
	switch {
	case errors.Is(err, models.ErrLineNotFound):
		cartReply(w, http.StatusNotFound, h.carts.GetCart(sid), id, err.Error())
	case err != nil:
		cartReply(w, http.StatusBadRequest, h.carts.GetCart(sid), id, err.Error())
	default:
		cartReply(w, http.StatusOK, cart, id, "Updated")
	}
}

func (h *StorefrontHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", h.page(r, "Automation Exercise - Signup / Login"))
}

func (h *StorefrontHandler) login(w http.ResponseWriter, r *http.Request) {
	email, password := r.PostFormValue("email"), r.PostFormValue("password")

	account, err := h.accounts.VerifyLogin(email, password)
	if err != nil {
		h.logger.Debug("login rejected", zap.String("email", email), zap.Error(err))
		data := h.page(r, "Automation Exercise - Signup / Login")
		data.LoginEmail = email
		data.LoginError = api.MsgLoginIncorrect
		h.render(w, http.StatusOK, "login", data)
		return
	}

	h.sessions.Login(SessionID(r), services.SessionUser{Name: account.Name, Email: account.Email})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *StorefrontHandler) signup(w http.ResponseWriter, r *http.Request) {
	name, email := r.PostFormValue("name"), r.PostFormValue("email")

	data := h.page(r, "Automation Exercise - Signup")
	data.SignupName = name
	data.SignupEmail = email

	if _, err := h.accounts.GetAccountByEmail(email); err == nil {
		data.SignupError = MsgEmailAddressExists
		h.render(w, http.StatusOK, "login", data)
		return
	}
	h.render(w, http.StatusOK, "signup", data)
}

func (h *StorefrontHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.message(w, r, http.StatusBadRequest, "Bad request", "bad-request")
		return
	}
	details := accountFromForm(r.PostForm)
	details.Email = r.PostFormValue("email_address")

	account, err := h.accounts.CreateAccount(details, r.PostFormValue("password"))
	switch {
	case errors.Is(err, models.ErrAccountExists):
		data := h.page(r, "Automation Exercise - Signup / Login")
		data.SignupName = details.Name
		data.SignupEmail = details.Email
		data.SignupError = MsgEmailAddressExists
		h.render(w, http.StatusOK, "login", data)
		return
	case err != nil:
		h.message(w, r, http.StatusBadRequest, "Bad request", "bad-request", err.Error())
		return
	}

	h.sessions.Login(SessionID(r), services.SessionUser{Name: account.Name, Email: account.Email})
	h.message(w, r, http.StatusOK, "Account Created!", "account-created",
		"Congratulations! Your new account has been successfully created!")
}

func (h *StorefrontHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(SessionID(r))
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *StorefrontHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r)
	user, ok := h.sessions.CurrentUser(sid)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err := h.accounts.CloseAccount(user.Email); err != nil {
		h.logger.Warn("failed to delete account", zap.String("email", user.Email), zap.Error(err))
	}
	h.sessions.Logout(sid)
	h.carts.ClearCart(sid)
	h.message(w, r, http.StatusOK, "Account Deleted!", "account-deleted",
		"Your account has been permanently deleted!")
}

func (h *StorefrontHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.PostFormValue("email")) == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{ResponseCode: http.StatusBadRequest, Message: "email is required"})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{ResponseCode: http.StatusOK, Message: MsgSubscribed})
}
