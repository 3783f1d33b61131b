// Package stubstore is a local test double of the storefront: the login
// flow, the store page with cart totals and price table, and the product
// JSON API. It lets the suite run hermetically, and its skew knobs make the
// mismatch paths reachable on purpose.
package stubstore

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultPassword is the stub's accepted password unless overridden.
const DefaultPassword = "sup3rs3cr3t"

// Product is one sellable item in the stub catalog.
type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Skew shifts rendered values away from the correct ones, in currency
// units. Zero values render an honest store; a test that needs a broken
// store dials in exactly the defect it wants to detect.
type Skew struct {
	VAT        float64
	GrandTotal float64
	TablePrice float64
	// APIPrice skews the per-product price endpoint relative to the
	// catalog listing.
	APIPrice float64
}

// Options configures a stub store.
type Options struct {
	// Password accepted by the login form; DefaultPassword when empty.
	Password string
	// VATRate applied to the cart subtotal; 0.2 when zero.
	VATRate float64
	// Products overrides the built-in catalog.
	Products []Product
	// Skew introduces deliberate rendering defects.
	Skew Skew
}

// Server is the stub storefront. It implements http.Handler.
type Server struct {
	password string
	vatRate  decimal.Decimal
	products []Product
	skew     Skew
	mux      *http.ServeMux
}

// New creates a stub store with the given options.
func New(opts Options) *Server {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.VATRate == 0 {
		opts.VATRate = 0.2
	}
	if opts.Products == nil {
		opts.Products = []Product{
			{ID: 10, Name: "TV", Price: decimal.NewFromFloat(129.99)},
			{ID: 11, Name: "Speaker", Price: decimal.NewFromFloat(49.99)},
			{ID: 12, Name: "Laptop", Price: decimal.NewFromFloat(999.90)},
		}
	}

	s := &Server{
		password: opts.Password,
		vatRate:  decimal.NewFromFloat(opts.VATRate),
		products: opts.Products,
		skew:     opts.Skew,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /login/", s.handleLoginForm)
	s.mux.HandleFunc("POST /login/", s.handleLoginSubmit)
	s.mux.HandleFunc("GET /store2/", s.handleStorePage)
	s.mux.HandleFunc("POST /store2/", s.handleAddToCart)
	s.mux.HandleFunc("GET /api/v1/product/list", s.handleProductList)
	s.mux.HandleFunc("GET /api/v1/price/{id}", s.handleProductPrice)

	return s
}

// ServeHTTP dispatches to the stub's routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Products returns the stub catalog.
func (s *Server) Products() []Product {
	return s.products
}

type loginPageData struct {
	Username string
	Error    string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, http.StatusOK, loginPageData{})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	role := r.FormValue("role")

	if username == "" || password == "" || role == "" {
		s.renderLogin(w, http.StatusOK, loginPageData{
			Username: username,
			Error:    "Please fill in all fields.",
		})
		return
	}

	if password != s.password {
		s.renderLogin(w, http.StatusOK, loginPageData{
			Username: username,
			Error:    "Incorrect password",
		})
		return
	}

	http.Redirect(w, r, "/store2/", http.StatusSeeOther)
}

func (s *Server) renderLogin(w http.ResponseWriter, status int, data loginPageData) {
	w.WriteHeader(status)
	if err := loginTemplate.Execute(w, data); err != nil {
		log.Printf("failed to render login page: %v", err)
	}
}

type tableRow struct {
	Name  string
	Price string
}

type storePageData struct {
	Products   []Product
	Rows       []tableRow
	TotalSum   string
	TotalVAT   string
	GrandTotal string
}

func (s *Server) handleStorePage(w http.ResponseWriter, r *http.Request) {
	s.renderStore(w, decimal.Zero)
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.FormValue("product"))
	if err != nil {
		http.Error(w, "unknown product", http.StatusBadRequest)
		return
	}
	amount, err := strconv.Atoi(r.FormValue("amount"))
	if err != nil || amount < 1 {
		amount = 1
	}

	product, ok := s.productByID(id)
	if !ok {
		http.Error(w, "unknown product", http.StatusBadRequest)
		return
	}

	subtotal := product.Price.Mul(decimal.NewFromInt(int64(amount)))
	s.renderStore(w, subtotal)
}

func (s *Server) renderStore(w http.ResponseWriter, subtotal decimal.Decimal) {
	vat := subtotal.Mul(s.vatRate)
	if !subtotal.IsZero() {
		vat = vat.Add(decimal.NewFromFloat(s.skew.VAT))
	}
	grand := subtotal.Add(vat)
	if !subtotal.IsZero() {
		grand = grand.Add(decimal.NewFromFloat(s.skew.GrandTotal))
	}

	rows := make([]tableRow, 0, len(s.products))
	for _, p := range s.products {
		price := p.Price.Add(decimal.NewFromFloat(s.skew.TablePrice))
		rows = append(rows, tableRow{Name: p.Name, Price: formatPrice(price)})
	}

	data := storePageData{
		Products:   s.products,
		Rows:       rows,
		TotalSum:   formatPrice(subtotal),
		TotalVAT:   formatPrice(vat),
		GrandTotal: formatPrice(grand),
	}

	if err := storeTemplate.Execute(w, data); err != nil {
		log.Printf("failed to render store page: %v", err)
	}
}

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Products []Product `json:"products"`
	}{Products: s.products}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("failed to encode product list: %v", err)
	}
}

func (s *Server) handleProductPrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, ok := s.productByID(id)
	if !ok {
		http.Error(w, "no such product", http.StatusNotFound)
		return
	}
	product.Price = product.Price.Add(decimal.NewFromFloat(s.skew.APIPrice))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(product); err != nil {
		log.Printf("failed to encode product price: %v", err)
	}
}

func (s *Server) productByID(id int) (Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func formatPrice(d decimal.Decimal) string {
	return fmt.Sprintf("$%s", d.StringFixed(2))
}
