package api

// Fixed oracle messages returned by the storefront. The codes they travel
// with (400, 404, 405) are decided by the system under test and are asserted
// as-is.
const (
	MsgMethodNotSupported  = "This request method is not supported."
	MsgSearchParamMissing  = "Bad request, search_product parameter is missing in POST request."
	MsgLoginParamMissing   = "Bad request, email or password parameter is missing in POST request."
	MsgLoginIncorrect      = "Your email or password is incorrect!"
	MsgUserExists          = "User exists!"
	MsgUserCreated         = "User created!"
	MsgEmailAlreadyExists  = "Email already exists!"
	MsgAccountDeleted      = "Account deleted!"
	MsgAccountNotFound     = "Account not found!"
	MsgUserUpdated         = "User updated!"
	MsgUserNotFoundByEmail = "Account not found with this email, try another email!"
)

// UserType wraps the audience of a category ("Women", "Men", "Kids")
type UserType struct {
	UserType string `json:"usertype"`
}

// ProductCategory is the category block of a product
type ProductCategory struct {
	UserType UserType `json:"usertype"`
	Category string   `json:"category"`
}

// Product is one catalogue entry
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    string          `json:"price"`
	Brand    string          `json:"brand"`
	Category ProductCategory `json:"category"`
}

// ProductsResponse is the body of /productsList and /searchProduct
type ProductsResponse struct {
	ResponseCode int       `json:"responseCode"`
	Message      string    `json:"message,omitempty"`
	Products     []Product `json:"products"`
}

// Brand is one brand entry
type Brand struct {
	ID    int    `json:"id"`
	Brand string `json:"brand"`
}

// BrandsResponse is the body of /brandsList
type BrandsResponse struct {
	ResponseCode int     `json:"responseCode"`
	Message      string  `json:"message,omitempty"`
	Brands       []Brand `json:"brands"`
}

// UserDetail is the user block returned by /getUserDetailByEmail
type UserDetail struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Title      string `json:"title"`
	BirthDay   string `json:"birth_day"`
	BirthMonth string `json:"birth_month"`
	BirthYear  string `json:"birth_year"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Company    string `json:"company"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Zipcode    string `json:"zipcode"`
}

// UserResponse is the body of the account endpoints
type UserResponse struct {
	ResponseCode int         `json:"responseCode"`
	Message      string      `json:"message,omitempty"`
	User         *UserDetail `json:"user,omitempty"`
}

// Account is the form submitted to /createAccount and /updateAccount
type Account struct {
	Name         string
	Email        string
	Password     string
	Title        string
	BirthDate    string
	BirthMonth   string
	BirthYear    string
	FirstName    string
	LastName     string
	Company      string
	Address1     string
	Address2     string
	Country      string
	State        string
	City         string
	Zipcode      string
	MobileNumber string
}

// Form renders the account as the storefront's form fields
func (a Account) Form() map[string]string {
	return map[string]string{
		"name":          a.Name,
		"email":         a.Email,
		"password":      a.Password,
		"title":         a.Title,
		"birth_date":    a.BirthDate,
		"birth_month":   a.BirthMonth,
		"birth_year":    a.BirthYear,
		"firstname":     a.FirstName,
		"lastname":      a.LastName,
		"company":       a.Company,
		"address1":      a.Address1,
		"address2":      a.Address2,
		"country":       a.Country,
		"state":         a.State,
		"city":          a.City,
		"zipcode":       a.Zipcode,
		"mobile_number": a.MobileNumber,
	}
}
