package pages

import (
	"errors"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

const (
	loginPath       = "/login"
	loginForm       = `form[action="/login"]`
	loginFormTitle  = `h2:has-text("Login to your account")`
	loginEmail      = `input[data-qa="login-email"]`
	loginPassword   = `input[data-qa="login-password"]`
	loginButton     = `button[data-qa="login-button"]`
	loginError      = `.login-form p:has-text("incorrect")`
	signupForm      = `form[action="/signup"]`
	signupFormTitle = `h2:has-text("New User Signup!")`
	signupName      = `input[data-qa="signup-name"]`
	signupEmail     = `input[data-qa="signup-email"]`
	signupButton    = `button[data-qa="signup-button"]`
	signupError     = `.signup-form p:has-text("exist")`
	orSeparator     = `p:has-text("OR")`
)

// FormData is what the login and signup inputs currently hold
type FormData struct {
	LoginEmail    string
	LoginPassword string
	SignupName    string
	SignupEmail   string
}

// LoginPage carries both the login and the signup forms
type LoginPage struct {
	BasePage
}

// NewLoginPage returns a login page bound to page
func NewLoginPage(page playwright.Page, baseURL string) *LoginPage {
	p := &LoginPage{}
	p.BasePage = newBasePage(page, baseURL, p)
	return p
}

// Open navigates to the login page
func (p *LoginPage) Open() error {
	return p.Navigate(loginPath)
}

// WaitForPageLoad waits for both forms
func (p *LoginPage) WaitForPageLoad() error {
	if err := p.waitForNetworkIdle(); err != nil {
		return err
	}
	if err := waitVisible(p.locate(loginForm), shortWait); err != nil {
		return wrap("wait for login form", err)
	}
	return wrap("wait for signup form", waitVisible(p.locate(signupForm), shortWait))
}

// FillLoginForm types the credentials without submitting
func (p *LoginPage) FillLoginForm(email, password string) error {
	if err := p.locate(loginEmail).Fill(email); err != nil {
		return wrap("fill login email", err)
	}
	return wrap("fill login password", p.locate(loginPassword).Fill(password))
}

// SubmitLoginForm presses the login button
func (p *LoginPage) SubmitLoginForm() error {
	return wrap("submit login", p.locate(loginButton).Click())
}

// LoginWithCredentials fills and submits the login form and reports whether
// the tab left the login page within the short wait. A rejected login is
// false with a nil error.
func (p *LoginPage) LoginWithCredentials(email, password string) (bool, error) {
	if err := p.FillLoginForm(email, password); err != nil {
		return false, err
	}
	if err := p.SubmitLoginForm(); err != nil {
		return false, err
	}
	return p.leftPage(loginPath)
}

// leftPage waits for the URL to stop containing path
func (p *LoginPage) leftPage(path string) (bool, error) {
	err := p.page.WaitForURL(func(url string) bool {
		return !strings.Contains(url, path)
	}, playwright.PageWaitForURLOptions{Timeout: playwright.Float(shortWait)})
	if errors.Is(err, playwright.ErrTimeout) {
		return false, nil
	}
	if err != nil {
		return false, wrap("wait for navigation", err)
	}
	return true, nil
}

// FillSignupForm types a name and email without submitting
func (p *LoginPage) FillSignupForm(name, email string) error {
	if err := p.locate(signupName).Fill(name); err != nil {
		return wrap("fill signup name", err)
	}
	return wrap("fill signup email", p.locate(signupEmail).Fill(email))
}

// SignupWithCredentials fills and submits the signup form and reports
// whether the tab moved on to the signup details page
func (p *LoginPage) SignupWithCredentials(name, email string) (bool, error) {
	if err := p.FillSignupForm(name, email); err != nil {
		return false, err
	}
	if err := p.locate(signupButton).Click(); err != nil {
		return false, wrap("submit signup", err)
	}
	left, err := p.leftPage(loginPath)
	if err != nil || !left {
		return false, err
	}
	return strings.Contains(p.URL(), "signup"), nil
}

// ClearForms empties every input on the page
func (p *LoginPage) ClearForms() error {
	for _, sel := range []string{loginEmail, loginPassword, signupName, signupEmail} {
		if err := p.locate(sel).Clear(); err != nil {
			return wrap("clear "+sel, err)
		}
	}
	return nil
}

// GetFormData returns the current input values
func (p *LoginPage) GetFormData() FormData {
	return FormData{
		LoginEmail:    p.inputValue(loginEmail),
		LoginPassword: p.inputValue(loginPassword),
		SignupName:    p.inputValue(signupName),
		SignupEmail:   p.inputValue(signupEmail),
	}
}

func (p *LoginPage) inputValue(sel string) string {
	v, err := p.locate(sel).InputValue()
	if err != nil {
		return ""
	}
	return v
}

// GetLoginError returns the login error text, "" when none is showing
func (p *LoginPage) GetLoginError() string {
	if !p.isVisible(loginError) {
		return ""
	}
	return textOf(p.locate(loginError))
}

// GetSignupError returns the signup error text, "" when none is showing
func (p *LoginPage) GetSignupError() string {
	if !p.isVisible(signupError) {
		return ""
	}
	return textOf(p.locate(signupError))
}

// IsOnLoginPage reports whether the tab is on the login page
func (p *LoginPage) IsOnLoginPage() bool {
	return strings.Contains(p.URL(), "login")
}

// IsLoginFormVisible reports whether the login form is showing
func (p *LoginPage) IsLoginFormVisible() bool {
	return p.isVisible(loginForm)
}

// IsSignupFormVisible reports whether the signup form is showing
func (p *LoginPage) IsSignupFormVisible() bool {
	return p.isVisible(signupForm)
}

// VerifyPageStructure fails t unless page chrome and both forms are present
func (p *LoginPage) VerifyPageStructure(t testing.TB) {
	t.Helper()
	p.requireVisible(t, headerSelector, navMenu, loginForm, signupForm, footerSelector)
}

// VerifyLoginFormElements fails t unless every login control is present
func (p *LoginPage) VerifyLoginFormElements(t testing.TB) {
	t.Helper()
	p.requireVisible(t, loginFormTitle, loginForm, loginEmail, loginPassword, loginButton)
}

// VerifySignupFormElements fails t unless every signup control is present
func (p *LoginPage) VerifySignupFormElements(t testing.TB) {
	t.Helper()
	p.requireVisible(t, signupFormTitle, signupForm, signupName, signupEmail, signupButton)
}

// VerifyLoginError fails t unless the login error is showing
func (p *LoginPage) VerifyLoginError(t testing.TB) {
	t.Helper()
	p.requireVisible(t, loginError)
}

// VerifyOrSeparator fails t unless the separator between the forms shows
func (p *LoginPage) VerifyOrSeparator(t testing.TB) {
	t.Helper()
	p.requireVisible(t, orSeparator)
}

// VerifyFormSecurity fails t unless the password is masked, the email
// inputs are typed and both forms post
func (p *LoginPage) VerifyFormSecurity(t testing.TB) {
	t.Helper()
	checks := []struct{ sel, attr, want string }{
		{loginPassword, "type", "password"},
		{loginEmail, "type", "email"},
		{signupEmail, "type", "email"},
		{loginForm, "method", "POST"},
		{signupForm, "method", "POST"},
	}
	for _, c := range checks {
		got, err := p.locate(c.sel).GetAttribute(c.attr)
		require.NoError(t, err, "%v: read %s of %s", ErrVerification, c.attr, c.sel)
		require.True(t, strings.EqualFold(c.want, got), "%v: %s %s = %q, want %q", ErrVerification, c.sel, c.attr, got, c.want)
	}
}

// VerifyFormsAreEmpty fails t unless every input is blank
func (p *LoginPage) VerifyFormsAreEmpty(t testing.TB) {
	t.Helper()
	require.Equal(t, FormData{}, p.GetFormData(), "%v: forms hold values", ErrVerification)
}
