package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCompareCmd(opts *rootOptions) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "compare ID ID [ID]",
		Short: "Compare the prices of two or three phones",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.checkOutput(); err != nil {
				return err
			}
			ids := make([]int, len(args))
			for i, a := range args {
				id, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("invalid phone id %q", a)
				}
				ids[i] = id
			}

			svc := opts.catalogService(policies(activeOnly, false))
			columns, err := svc.Compare(cmd.Context(), ids)
			if err != nil {
				return err
			}
			if opts.output != "table" {
				return renderStructured(cmd.OutOrStdout(), opts.output, columns)
			}
			renderComparison(cmd.OutOrStdout(), columns)
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Ignore inactive prices")
	return cmd
}
