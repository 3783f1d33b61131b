package stubstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postForm(t *testing.T, server *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestLoginFlow(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		role          string
		wantStatus    int
		wantError     string
		wantRedirect  string
	}{
		{
			name:         "valid credentials redirect to store",
			username:     "Johan",
			password:     DefaultPassword,
			role:         "consumer",
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/store2/",
		},
		{
			name:       "wrong password",
			username:   "Johan",
			password:   "wrong_password",
			role:       "consumer",
			wantStatus: http.StatusOK,
			wantError:  "Incorrect password",
		},
		{
			name:       "empty password",
			username:   "Johan",
			password:   "",
			role:       "consumer",
			wantStatus: http.StatusOK,
			wantError:  "Please fill in all fields.",
		},
		{
			name:       "empty username",
			username:   "",
			password:   DefaultPassword,
			role:       "consumer",
			wantStatus: http.StatusOK,
			wantError:  "Please fill in all fields.",
		},
	}

	server := New(Options{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(t, server, "/login/", url.Values{
				"username": {tt.username},
				"password": {tt.password},
				"role":     {tt.role},
			})

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantRedirect != "" {
				if got := w.Header().Get("Location"); got != tt.wantRedirect {
					t.Errorf("expected redirect to %q, got %q", tt.wantRedirect, got)
				}
			}
			if tt.wantError != "" {
				body := w.Body.String()
				if !strings.Contains(body, tt.wantError) {
					t.Errorf("expected error message %q in body", tt.wantError)
				}
				if !strings.Contains(body, `data-testid="error-message"`) {
					t.Error("expected error message element in body")
				}
			}
		})
	}
}

func TestStorePage_InitialTotalsAreZero(t *testing.T) {
	server := New(Options{})

	req := httptest.NewRequest(http.MethodGet, "/store2/", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		`<span id="totalSum">$0.00</span>`,
		`<span id="totalVAT">$0.00</span>`,
		`<span id="grandTotal">$0.00</span>`,
		`data-testid="select-product"`,
		`data-testid="add-to-cart-button"`,
		`id="productList"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected store page to contain %q", want)
		}
	}
}

func TestAddToCart_TotalsMath(t *testing.T) {
	server := New(Options{})

	// Two TVs at $129.99: subtotal 259.98, 20% VAT 52.00 (rounded), grand 311.98.
	w := postForm(t, server, "/store2/", url.Values{
		"product": {"10"},
		"amount":  {"2"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		`<span id="totalSum">$259.98</span>`,
		`<span id="totalVAT">$52.00</span>`,
		`<span id="grandTotal">$311.98</span>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected totals to contain %q, body:\n%s", want, body)
		}
	}
}

func TestAddToCart_SkewedVAT(t *testing.T) {
	server := New(Options{Skew: Skew{VAT: 5.00}})

	w := postForm(t, server, "/store2/", url.Values{
		"product": {"11"},
		"amount":  {"1"},
	})

	body := w.Body.String()
	// Speaker $49.99: honest VAT 10.00, skewed by +5.00.
	if !strings.Contains(body, `<span id="totalVAT">$15.00</span>`) {
		t.Errorf("expected skewed VAT in body:\n%s", body)
	}
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	server := New(Options{})

	w := postForm(t, server, "/store2/", url.Values{
		"product": {"999"},
		"amount":  {"1"},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestProductListEndpoint(t *testing.T) {
	server := New(Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/product/list", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var payload struct {
		Products []struct {
			ID    int    `json:"id"`
			Name  string `json:"name"`
			Price string `json:"price"`
		} `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode product list: %v", err)
	}

	if len(payload.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(payload.Products))
	}
	if payload.Products[0].ID != 10 || payload.Products[0].Name != "TV" {
		t.Errorf("unexpected first product: %+v", payload.Products[0])
	}
}

func TestProductPriceEndpoint(t *testing.T) {
	server := New(Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/price/10", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var product struct {
		ID    int    `json:"id"`
		Price string `json:"price"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("failed to decode price response: %v", err)
	}
	if product.Price != "129.99" {
		t.Errorf("expected price 129.99, got %q", product.Price)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/price/999", nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown product, got %d", w.Code)
	}
}
