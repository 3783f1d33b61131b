package reconcile

import (
	"context"
	"errors"

	"github.com/hoffis/storecheck/internal/money"
)

// DefaultTolerance is the maximum absolute difference, in currency units,
// still considered equal.
const DefaultTolerance = 0.01

// ErrEmptyCatalog is returned when a reconciliation run is started with no
// products. An empty catalog is a configuration failure, not a clean pass.
var ErrEmptyCatalog = errors.New("reconcile: no products to compare")

// ProductRef identifies one product under comparison.
type ProductRef struct {
	ID   string
	Name string
}

// FetchFunc retrieves the raw price text for one product from a price
// source. Implementations may fail per product; the engine records the
// failure and moves on.
type FetchFunc func(ctx context.Context, ref ProductRef) (string, error)

// Options tunes a reconciliation run.
type Options struct {
	// Tolerance is the comparison epsilon; zero means DefaultTolerance.
	Tolerance float64
}

func (o Options) tolerance() float64 {
	if o.Tolerance == 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

// Reconcile compares a reference price against an observed price for every
// product, in sequence order, and aggregates discrepancies into a report.
//
// Per-product problems never abort the batch: a failed reference fetch is
// recorded and the observed fetch for that product is skipped (comparing
// against missing data is meaningless); a failed observed fetch is recorded
// and the loop continues. Both raw values pass through money.Normalize
// before comparison, so a scraped cell that is momentarily empty shows up as
// a mismatch against the reference rather than a crash.
func Reconcile(ctx context.Context, products []ProductRef, fetchReference, fetchObserved FetchFunc, opts Options) (*Report, error) {
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	tolerance := opts.tolerance()
	report := NewReport()

	for _, ref := range products {
		rawReference, err := fetchReference(ctx, ref)
		if err != nil {
			report.Append(Entry{
				ProductID:   ref.ID,
				ProductName: ref.Name,
				Kind:        IssueFetchError,
				Side:        SideReference,
				Detail:      err.Error(),
			})
			continue
		}

		rawObserved, err := fetchObserved(ctx, ref)
		if err != nil {
			report.Append(Entry{
				ProductID:   ref.ID,
				ProductName: ref.Name,
				Kind:        IssueFetchError,
				Side:        SideObserved,
				Detail:      err.Error(),
			})
			continue
		}

		expected := money.Normalize(rawReference)
		actual := money.Normalize(rawObserved)

		if !expected.WithinTolerance(actual, tolerance) {
			report.Append(Entry{
				ProductID:   ref.ID,
				ProductName: ref.Name,
				Kind:        IssuePriceMismatch,
				Expected:    expected.String(),
				Actual:      actual.String(),
			})
		}
	}

	return report, nil
}

// Totals holds the three related observed values rendered by the cart.
type Totals struct {
	Subtotal   money.Money
	Tax        money.Money
	GrandTotal money.Money
}

// VerifyTotals runs the derived VAT checks for one product's cart totals and
// appends every violation to the report.
//
// The two checks are independent and both always run: tax must be
// subtotal x vatRate, and the grand total must be subtotal plus the tax that
// was actually rendered (not the tax that should have been). A wrong VAT
// therefore does not suppress a wrong grand total for the same product.
func VerifyTotals(report *Report, ref ProductRef, totals Totals, vatRate, tolerance float64) {
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	expectedTax := totals.Subtotal.Mul(vatRate)
	if !expectedTax.WithinTolerance(totals.Tax, tolerance) {
		report.Append(Entry{
			ProductID:   ref.ID,
			ProductName: ref.Name,
			Kind:        IssueVATMismatch,
			Expected:    expectedTax.String(),
			Actual:      totals.Tax.String(),
		})
	}

	expectedGrand := totals.Subtotal.Add(totals.Tax)
	if !expectedGrand.WithinTolerance(totals.GrandTotal, tolerance) {
		report.Append(Entry{
			ProductID:   ref.ID,
			ProductName: ref.Name,
			Kind:        IssueTotalMismatch,
			Expected:    expectedGrand.String(),
			Actual:      totals.GrandTotal.String(),
		})
	}
}
