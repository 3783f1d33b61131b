package reconcile

import (
	"fmt"
	"strings"
)

// IssueKind classifies a single reconciliation finding.
type IssueKind string

const (
	IssueFetchError    IssueKind = "fetch-error"
	IssuePriceMismatch IssueKind = "price-mismatch"
	IssueVATMismatch   IssueKind = "vat-mismatch"
	IssueTotalMismatch IssueKind = "total-mismatch"
)

// Side names which price source a fetch failure came from.
type Side string

const (
	SideReference Side = "reference"
	SideObserved  Side = "observed"
)

// Entry is one detected discrepancy for one product.
type Entry struct {
	ProductID   string
	ProductName string
	Kind        IssueKind
	// Expected and Actual hold the compared values for mismatch entries,
	// rendered with two decimals. Empty for fetch errors.
	Expected string
	Actual   string
	// Side and Detail describe fetch failures.
	Side   Side
	Detail string
}

// Report aggregates the findings of one reconciliation run. Entries are
// append-only and kept in detection order; an empty report means the run
// passed.
type Report struct {
	entries []Entry
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Append records one more finding.
func (r *Report) Append(e Entry) {
	r.entries = append(r.entries, e)
}

// Entries returns the recorded findings in detection order.
func (r *Report) Entries() []Entry {
	return r.entries
}

// Len returns the number of recorded findings.
func (r *Report) Len() int {
	return len(r.entries)
}

// IsClean reports whether no discrepancies were recorded. This is what the
// surrounding test layer asserts on.
func (r *Report) IsClean() bool {
	return len(r.entries) == 0
}

// Summarize renders the report as one line per finding, in detection order.
// The output is deterministic for a given report.
func (r *Report) Summarize() string {
	if r.IsClean() {
		return "all prices reconciled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d discrepancies found:\n", len(r.entries))
	for _, e := range r.entries {
		b.WriteString(e.describe())
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e Entry) describe() string {
	label := e.ProductID
	if e.ProductName != "" {
		label = fmt.Sprintf("%s (%s)", e.ProductID, e.ProductName)
	}

	if e.Kind == IssueFetchError {
		return fmt.Sprintf("product %s: %s [%s]: %s", label, e.Kind, e.Side, e.Detail)
	}
	return fmt.Sprintf("product %s: %s: expected %s, got %s", label, e.Kind, e.Expected, e.Actual)
}
