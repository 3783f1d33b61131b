package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hoffis/storecheck/internal/api"
	"github.com/hoffis/storecheck/internal/config"
	"github.com/hoffis/storecheck/internal/reconcile"
	"github.com/hoffis/storecheck/internal/repository"
)

// Dependencies holds everything the commands need. Runs is nil when no
// database is configured; run history is then simply not recorded.
type Dependencies struct {
	StoreConfig *config.StoreConfig
	Client      api.StoreClient
	Runs        *repository.RunRepository
	Out         io.Writer
}

// RunReconcile cross-checks the store's per-product price endpoint (the
// reference) against the price advertised in the catalog listing (the
// observed side) and prints the resulting report. A non-clean report is the
// command's failure.
func RunReconcile(ctx context.Context, deps Dependencies) error {
	started := time.Now()

	products, err := deps.Client.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load product catalog: %w", err)
	}

	listed, err := deps.Client.CatalogPrices(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog prices: %w", err)
	}

	fetchReference := func(ctx context.Context, ref reconcile.ProductRef) (string, error) {
		return deps.Client.ProductPrice(ctx, ref.ID)
	}
	fetchObserved := func(ctx context.Context, ref reconcile.ProductRef) (string, error) {
		raw, ok := listed[ref.ID]
		if !ok {
			return "", fmt.Errorf("catalog listing has no price for product %s", ref.ID)
		}
		return raw, nil
	}

	report, err := reconcile.Reconcile(ctx, products, fetchReference, fetchObserved, reconcile.Options{})
	if err != nil {
		return err
	}
	finished := time.Now()

	fmt.Fprintln(deps.Out, report.Summarize())

	if deps.Runs != nil {
		runID, err := deps.Runs.SaveRun(deps.StoreConfig.BaseURL, started, finished, report)
		if err != nil {
			log.Printf("Warning: failed to save run history: %v", err)
		} else {
			log.Printf("Saved reconciliation run %s", runID)
		}
	}

	if !report.IsClean() {
		return fmt.Errorf("reconciliation found %d discrepancies", report.Len())
	}
	return nil
}

// RunCatalog prints the product catalog as the reconciliation sees it.
func RunCatalog(ctx context.Context, deps Dependencies) error {
	products, err := deps.Client.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load product catalog: %w", err)
	}

	for _, p := range products {
		if p.Name != "" {
			fmt.Fprintf(deps.Out, "%s\t%s\n", p.ID, p.Name)
		} else {
			fmt.Fprintln(deps.Out, p.ID)
		}
	}
	return nil
}

// RunPing measures one round trip against the store listing page and checks
// it against the configured response budget.
func RunPing(ctx context.Context, deps Dependencies) error {
	duration, err := deps.Client.ResponseTime(ctx, "/store2/")
	if err != nil {
		return fmt.Errorf("failed to reach store: %w", err)
	}

	budget := deps.StoreConfig.ResponseBudget
	fmt.Fprintf(deps.Out, "GET /store2/ answered in %s (budget %s)\n", duration.Round(time.Millisecond), budget)

	if duration > budget {
		return fmt.Errorf("response took %s, exceeding the %s budget", duration.Round(time.Millisecond), budget)
	}
	return nil
}
