package e2e

import (
	"strings"
	"testing"

	"github.com/hoffis/storecheck/internal/pages"
	"github.com/playwright-community/playwright-go"
)

// TestLoginWithValidCredentials tests the happy-path login flow
// Feature: Storefront Login
//
//	Scenario: Log in with valid credentials
//	  Given I am on the login page
//	  When I submit the configured username, password and role
//	  Then I should be redirected to the store page
func TestLoginWithValidCredentials(t *testing.T) {
	page := newPage(t)

	loginPage := pages.NewLoginPage(page, storeConfig.BaseURL)
	if err := loginPage.Goto(); err != nil {
		t.Fatalf("Failed to open login page: %v", err)
	}

	if err := loginPage.Login(storeConfig.Username, storeConfig.Password, storeConfig.Role); err != nil {
		t.Fatalf("Failed to submit login form: %v", err)
	}

	if err := page.WaitForURL(storeURLPattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("Did not redirect to store page: %v", err)
	}
}

// TestLoginRejection tests the error paths of the login form
// Feature: Storefront Login
//
//	Scenario Outline: Reject invalid login attempts
//	  Given I am on the login page
//	  When I submit "<username>" and "<password>"
//	  Then I should see the error "<message>"
//	  And I should remain on the login page
func TestLoginRejection(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		wantError string
	}{
		{
			name:      "wrong password",
			username:  "Johan",
			password:  "definitely-not-the-password",
			wantError: "Incorrect password",
		},
		{
			name:      "empty password",
			username:  "Johan",
			password:  "",
			wantError: "Please fill in all fields.",
		},
		{
			name:      "empty username",
			username:  "",
			password:  "whatever",
			wantError: "Please fill in all fields.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newPage(t)

			loginPage := pages.NewLoginPage(page, storeConfig.BaseURL)
			if err := loginPage.Goto(); err != nil {
				t.Fatalf("Failed to open login page: %v", err)
			}

			if err := loginPage.Login(tt.username, tt.password, storeConfig.Role); err != nil {
				t.Fatalf("Failed to submit login form: %v", err)
			}

			if err := loginPage.ErrorMessage.WaitFor(playwright.LocatorWaitForOptions{
				State: playwright.WaitForSelectorStateVisible,
			}); err != nil {
				t.Fatalf("Error message never appeared: %v", err)
			}

			message, err := loginPage.ErrorMessage.TextContent()
			if err != nil {
				t.Fatalf("Failed to read error message: %v", err)
			}
			if strings.TrimSpace(message) != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, strings.TrimSpace(message))
			}

			if !strings.Contains(page.URL(), "/login") {
				t.Errorf("Expected to remain on the login page, got %s", page.URL())
			}
		})
	}
}
