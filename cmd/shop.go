package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tourin/storefront/activity"
)

func newActivityCommand(sf *storefront) *cobra.Command {
	var categoryName string
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Browse bookable activities",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List activities, optionally within one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			var activities []activity.Activity
			if categoryName != "" {
				if err := sf.categories.Load(cmd.Context()); err != nil {
					return err
				}
				cat, ok := sf.categories.FindByName(categoryName)
				if !ok {
					return fmt.Errorf("unknown category %q", categoryName)
				}
				byCategory, err := sf.activities.ByCategory(cmd.Context(), cat.ID)
				if err != nil {
					return err
				}
				activities = byCategory
			} else {
				if err := sf.activities.Load(cmd.Context()); err != nil {
					return err
				}
				activities = sf.activities.Items()
			}

			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tTITLE\tCITY\tPRICE\tDISCOUNTED\tRATING")
			for _, a := range activities {
				fmt.Fprintf(
					w,
					"%s\t%s\t%s\t%s\t%s\t%.1f\n",
					a.ID,
					a.Title,
					a.City,
					a.Price.String(),
					a.PriceDiscount.String(),
					a.Rating,
				)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&categoryName, "category", "", "category name (case-insensitive)")

	cmd.AddCommand(list)
	return cmd
}
