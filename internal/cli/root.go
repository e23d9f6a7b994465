package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/pkg/phoneapi"
)

// Backend is what the catalog commands read from: the pipeline source plus
// id lookups for comparisons.
type Backend interface {
	catalog.Source
	service.PhoneLookup
}

// opener returns the backend for an API base URL.
type opener func(apiURL string) Backend

type rootOptions struct {
	apiURL      string
	output      string
	concurrency int
	open        opener
	now         func() time.Time
}

func newRootCmd(open opener, now func() time.Time) *cobra.Command {
	opts := &rootOptions{open: open, now: now}

	cmd := &cobra.Command{
		Use:           "phonepicks",
		Short:         "Browse, rank and compare phone prices from the terminal",
		Long:          "phonepicks runs the catalog pipeline against a phone price API server and prints ranked picks and price comparisons.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultAPI := os.Getenv("PHONEPICKS_API")
	if defaultAPI == "" {
		defaultAPI = phoneapi.DefaultBaseURL
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", defaultAPI, "API base URL (env PHONEPICKS_API)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, yaml or json")
	cmd.PersistentFlags().IntVar(&opts.concurrency, "concurrency", catalog.DefaultConcurrency, "Parallel offer lookups")

	cmd.AddCommand(newPicksCmd(opts))
	cmd.AddCommand(newCompareCmd(opts))
	cmd.AddCommand(newHashPasswordCmd())
	cmd.AddCommand(newGenSecretCmd())
	return cmd
}

func (o *rootOptions) catalogService(offers catalog.OfferPolicy, unknown catalog.UnknownPricePlacement) *service.CatalogService {
	backend := o.open(o.apiURL)
	svc := service.NewCatalogService(backend, backend, service.CatalogOptions{
		Concurrency: o.concurrency,
		Offers:      offers,
		Unknown:     unknown,
	})
	svc.SetClock(o.now)
	return svc
}

func (o *rootOptions) checkOutput() error {
	switch o.output {
	case "table", "yaml", "json":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, yaml or json)", o.output)
}

func openAPI(apiURL string) Backend {
	return phoneapi.NewClient(apiURL)
}

// Execute runs the phonepicks root command.
func Execute() error {
	return newRootCmd(openAPI, time.Now).Execute()
}
