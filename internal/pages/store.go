package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// RawTotals carries the unparsed text of the three cart totals. Parsing is
// left to the money package so UI scraping and API payloads go through the
// same normalization.
type RawTotals struct {
	Subtotal   string
	VAT        string
	GrandTotal string
}

// StorePage wraps the store page: the add-to-cart form, the cart totals and
// the product table further down the page.
type StorePage struct {
	page playwright.Page

	ProductSelect   playwright.Locator
	AmountInput     playwright.Locator
	AddToCartButton playwright.Locator

	TotalSum   playwright.Locator
	TotalVAT   playwright.Locator
	GrandTotal playwright.Locator

	ProductList playwright.Locator

	baseURL string
}

// NewStorePage creates the store page object for a browser page.
func NewStorePage(page playwright.Page, baseURL string) *StorePage {
	return &StorePage{
		page:            page,
		ProductSelect:   page.GetByTestId("select-product"),
		AmountInput:     page.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Amount"}),
		AddToCartButton: page.GetByTestId("add-to-cart-button"),
		TotalSum:        page.Locator("#totalSum"),
		TotalVAT:        page.Locator("#totalVAT"),
		GrandTotal:      page.Locator("#grandTotal"),
		ProductList:     page.Locator("#productList"),
		baseURL:         baseURL,
	}
}

// Goto navigates straight to the store page, for flows where login does not
// redirect automatically.
func (s *StorePage) Goto() error {
	if _, err := s.page.Goto(s.baseURL + "/store2/"); err != nil {
		return fmt.Errorf("failed to open store page: %w", err)
	}
	return nil
}

// AddProductToCart selects a product by id, sets the quantity and triggers
// the add-to-cart action.
func (s *StorePage) AddProductToCart(productID string, amount int) error {
	if _, err := s.ProductSelect.SelectOption(playwright.SelectOptionValues{
		Values: &[]string{productID},
	}); err != nil {
		return fmt.Errorf("failed to select product %s: %w", productID, err)
	}

	if err := s.AmountInput.Fill(strconv.Itoa(amount)); err != nil {
		return fmt.Errorf("failed to fill amount: %w", err)
	}

	if err := s.AddToCartButton.Click(); err != nil {
		return fmt.Errorf("failed to click add to cart: %w", err)
	}

	return nil
}

// Totals reads the raw text of the three cart totals.
func (s *StorePage) Totals() (RawTotals, error) {
	subtotal, err := s.textOf(s.TotalSum, "total sum")
	if err != nil {
		return RawTotals{}, err
	}
	vat, err := s.textOf(s.TotalVAT, "total VAT")
	if err != nil {
		return RawTotals{}, err
	}
	grand, err := s.textOf(s.GrandTotal, "grand total")
	if err != nil {
		return RawTotals{}, err
	}

	return RawTotals{Subtotal: subtotal, VAT: vat, GrandTotal: grand}, nil
}

func (s *StorePage) textOf(locator playwright.Locator, what string) (string, error) {
	if err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return "", fmt.Errorf("%s never became visible: %w", what, err)
	}

	text, err := locator.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", what, err)
	}
	return text, nil
}

// PriceFromTable reads the raw price text for a product from the product
// table. The product name is resolved through the select option for the id,
// then the matching table row is located; the price sits in the row's last
// cell.
func (s *StorePage) PriceFromTable(productID string) (string, error) {
	option := s.ProductSelect.Locator(fmt.Sprintf(`option[value="%s"]`, productID))
	productName, err := option.TextContent()
	if err != nil {
		return "", fmt.Errorf("no product name for productId=%s: %w", productID, err)
	}
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return "", fmt.Errorf("no product name for productId=%s", productID)
	}

	row := s.ProductList.Locator("tr", playwright.LocatorLocatorOptions{HasText: productName})
	if err := row.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return "", fmt.Errorf("table row for %q never became visible: %w", productName, err)
	}

	priceCell := row.GetByRole(*playwright.AriaRoleCell).Last()
	if err := priceCell.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return "", fmt.Errorf("price cell for %q never became visible: %w", productName, err)
	}

	priceText, err := priceCell.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read price cell for %q: %w", productName, err)
	}

	return priceText, nil
}
