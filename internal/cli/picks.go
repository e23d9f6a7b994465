package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/service"
)

func policies(activeOnly, unknownLast bool) (catalog.OfferPolicy, catalog.UnknownPricePlacement) {
	offers, unknown := catalog.OffersAll, catalog.UnknownLegacy
	if activeOnly {
		offers = catalog.OffersActiveOnly
	}
	if unknownLast {
		unknown = catalog.UnknownLast
	}
	return offers, unknown
}

func newPicksCmd(opts *rootOptions) *cobra.Command {
	var (
		category    string
		maxPrice    int64
		sortMode    string
		activeOnly  bool
		unknownLast bool
		top         int
	)

	cmd := &cobra.Command{
		Use:   "picks [preset]",
		Short: "Rank phones by the catalog criteria or a named preset",
		Long: "Without a preset, filters by --category and --max-price and sorts by --sort.\n" +
			"Presets: best-overall, best-performance, best-value, budget.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.checkOutput(); err != nil {
				return err
			}
			svc := opts.catalogService(policies(activeOnly, unknownLast))

			var (
				title string
				aggs  []catalog.PhoneAggregate
			)
			if len(args) == 1 {
				res, err := svc.Pick(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				title, aggs = res.Preset.Title, res.Phones
			} else {
				q := service.BrowseQuery{Category: category, Sort: sortMode}
				if maxPrice >= 0 {
					q.MaxPrice = &maxPrice
				}
				var err error
				if aggs, err = svc.Browse(cmd.Context(), q); err != nil {
					return err
				}
				title = fmt.Sprintf("Phones (%s, %s)", displayCategory(category), catalog.ParseSortMode(sortMode))
			}

			if top > 0 && len(aggs) > top {
				aggs = aggs[:top]
			}
			if opts.output != "table" {
				return renderStructured(cmd.OutOrStdout(), opts.output, aggs)
			}
			renderAggregates(cmd.OutOrStdout(), title, aggs)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", catalog.CategoryAll, "Category filter (all, budget, midrange, flagship, gaming, foldable)")
	cmd.Flags().Int64Var(&maxPrice, "max-price", -1, "Upper bound on the lowest price (-1 for none)")
	cmd.Flags().StringVar(&sortMode, "sort", string(catalog.SortRecommended), "Sort: recommended, price-low, price-high, newest")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Ignore inactive prices")
	cmd.Flags().BoolVar(&unknownLast, "unknown-last", false, "Sort phones without prices last in both directions")
	cmd.Flags().IntVar(&top, "top", 0, "Show only the first N phones")
	return cmd
}

func displayCategory(c string) string {
	if c == "" {
		return catalog.CategoryAll
	}
	return c
}
