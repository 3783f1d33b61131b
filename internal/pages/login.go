package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// LoginPage wraps the storefront login screen. Elements are located through
// accessible roles and labels so the page object keeps working across markup
// changes.
type LoginPage struct {
	page playwright.Page

	Username     playwright.Locator
	Password     playwright.Locator
	RoleSelect   playwright.Locator
	LoginButton  playwright.Locator
	ErrorMessage playwright.Locator

	baseURL string
}

// NewLoginPage creates the login page object for a browser page.
func NewLoginPage(page playwright.Page, baseURL string) *LoginPage {
	return &LoginPage{
		page:         page,
		Username:     page.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Username"}),
		Password:     page.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Password"}),
		RoleSelect:   page.GetByLabel("Select Role"),
		LoginButton:  page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Login"}),
		ErrorMessage: page.GetByTestId("error-message"),
		baseURL:      baseURL,
	}
}

// Goto navigates to the login page and waits until it is ready for
// interaction.
func (l *LoginPage) Goto() error {
	if _, err := l.page.Goto(l.baseURL+"/login/", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}

	if err := l.Username.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("login form did not become visible: %w", err)
	}

	return nil
}

// Login fills in the credentials, selects the role and submits the form.
// It does not assert the outcome; callers check for the redirect or the
// error message depending on the scenario.
func (l *LoginPage) Login(username, password, role string) error {
	if err := l.Username.Fill(username); err != nil {
		return fmt.Errorf("failed to fill username: %w", err)
	}
	if err := l.Password.Fill(password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}

	if _, err := l.RoleSelect.SelectOption(playwright.SelectOptionValues{
		Values: &[]string{role},
	}); err != nil {
		return fmt.Errorf("failed to select role %q: %w", role, err)
	}

	if err := l.LoginButton.Click(); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}

	return nil
}
