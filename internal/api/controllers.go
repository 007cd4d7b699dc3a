package api

// Endpoint paths relative to the API base URL
const (
	PathProductsList         = "/productsList"
	PathBrandsList           = "/brandsList"
	PathSearchProduct        = "/searchProduct"
	PathVerifyLogin          = "/verifyLogin"
	PathCreateAccount        = "/createAccount"
	PathDeleteAccount        = "/deleteAccount"
	PathUpdateAccount        = "/updateAccount"
	PathGetUserDetailByEmail = "/getUserDetailByEmail"
)

// ProductsController covers the product listing and search endpoints
type ProductsController struct {
	client *Client
}

// NewProductsController creates a products controller
func NewProductsController(client *Client) *ProductsController {
	return &ProductsController{client: client}
}

// GetAllProducts lists every product
func (c *ProductsController) GetAllProducts() (Envelope, error) {
	return c.client.Get(PathProductsList, nil)
}

// PostToProductsList posts to the GET-only listing; the storefront answers 405
func (c *ProductsController) PostToProductsList() (Envelope, error) {
	return c.client.Post(PathProductsList, nil)
}

// SearchProduct searches the catalogue by term
func (c *ProductsController) SearchProduct(term string) (Envelope, error) {
	return c.client.PostForm(PathSearchProduct, map[string]string{"search_product": term})
}

// SearchProductWithoutParameter omits search_product; the storefront answers 400
func (c *ProductsController) SearchProductWithoutParameter() (Envelope, error) {
	return c.client.PostForm(PathSearchProduct, nil)
}

// BrandsController covers the brand listing endpoint
type BrandsController struct {
	client *Client
}

// NewBrandsController creates a brands controller
func NewBrandsController(client *Client) *BrandsController {
	return &BrandsController{client: client}
}

// GetAllBrands lists every brand
func (c *BrandsController) GetAllBrands() (Envelope, error) {
	return c.client.Get(PathBrandsList, nil)
}

// PutToBrandsList puts to the GET-only listing; the storefront answers 405
func (c *BrandsController) PutToBrandsList() (Envelope, error) {
	return c.client.Put(PathBrandsList, nil)
}

// UserController covers login verification and the account lifecycle
type UserController struct {
	client *Client
}

// NewUserController creates a user controller
func NewUserController(client *Client) *UserController {
	return &UserController{client: client}
}

// VerifyLogin checks a pair of credentials. Invalid credentials come back as
// responseCode 404, not 401.
func (c *UserController) VerifyLogin(email, password string) (Envelope, error) {
	return c.client.PostForm(PathVerifyLogin, map[string]string{
		"email":    email,
		"password": password,
	})
}

// VerifyLoginWithoutEmail sends only the password; the storefront answers 400
func (c *UserController) VerifyLoginWithoutEmail(password string) (Envelope, error) {
	return c.client.PostForm(PathVerifyLogin, map[string]string{"password": password})
}

// DeleteVerifyLogin deletes against the POST-only endpoint; the storefront answers 405
func (c *UserController) DeleteVerifyLogin() (Envelope, error) {
	return c.client.Delete(PathVerifyLogin, nil)
}

// CreateAccount registers a new account
func (c *UserController) CreateAccount(account Account) (Envelope, error) {
	return c.client.PostForm(PathCreateAccount, account.Form())
}

// DeleteAccount removes an account
func (c *UserController) DeleteAccount(email, password string) (Envelope, error) {
	return c.client.Delete(PathDeleteAccount, map[string]string{
		"email":    email,
		"password": password,
	})
}

// UpdateAccount replaces an account's details
func (c *UserController) UpdateAccount(account Account) (Envelope, error) {
	return c.client.PutForm(PathUpdateAccount, account.Form())
}

// GetUserDetailByEmail fetches an account by email
func (c *UserController) GetUserDetailByEmail(email string) (Envelope, error) {
	return c.client.Get(PathGetUserDetailByEmail, map[string]string{"email": email})
}
