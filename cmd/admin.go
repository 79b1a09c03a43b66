package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tourin/storefront/banner"
	"github.com/tourin/storefront/category"
	"github.com/tourin/storefront/internal/resource"
	"github.com/tourin/storefront/internal/view"
	"github.com/tourin/storefront/promo"
)

const itemsPerPage = 10

func resultErr(result resource.Result) error {
	if result.Success {
		return nil
	}
	return errors.New(result.Error)
}

func newCategoryCommand(sf *storefront) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage activity categories",
	}

	var search string
	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.categories.Load(cmd.Context()); err != nil {
				return err
			}
			table := view.NewList(
				sf.categories.Items,
				func(c category.Category) string { return c.Name },
				itemsPerPage,
			)
			table.Search(search)
			table.SetPage(page)
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tIMAGE")
			for _, c := range table.PageItems() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.ImageUrl)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", table.Page(), table.TotalPages())
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filter by name")
	list.Flags().IntVar(&page, "page", 1, "page number")

	var payload category.Payload
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resultErr(sf.categories.Create(cmd.Context(), payload))
		},
	}
	create.Flags().StringVar(&payload.Name, "name", "", "category name")
	create.Flags().StringVar(&payload.ImageUrl, "image-url", "", "image URL")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resultErr(sf.categories.Update(cmd.Context(), args[0], payload))
		},
	}
	update.Flags().StringVar(&payload.Name, "name", "", "category name")
	update.Flags().StringVar(&payload.ImageUrl, "image-url", "", "image URL")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resultErr(sf.categories.Delete(cmd.Context(), args[0]))
		},
	}

	cmd.AddCommand(list, create, update, remove)
	return cmd
}

func newBannerCommand(sf *storefront) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banner",
		Short: "Manage landing page banners",
	}

	var search string
	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List banners",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.banners.Load(cmd.Context()); err != nil {
				return err
			}
			table := view.NewList(
				sf.banners.Items,
				func(b banner.Banner) string { return b.Name },
				itemsPerPage,
			)
			table.Search(search)
			table.SetPage(page)
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tIMAGE")
			for _, b := range table.PageItems() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Name, b.ImageUrl)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", table.Page(), table.TotalPages())
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filter by name")
	list.Flags().IntVar(&page, "page", 1, "page number")

	var payload banner.Payload
	var imagePath string
	submit := func(cmd *cobra.Command, id string) error {
		if imagePath != "" {
			url, err := sf.banners.UploadImage(cmd.Context(), imagePath)
			if err != nil {
				return err
			}
			payload.ImageUrl = url
		}
		if id == "" {
			return resultErr(sf.banners.Create(cmd.Context(), payload))
		}
		return resultErr(sf.banners.Update(cmd.Context(), id, payload))
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a banner",
		RunE: func(cmd *cobra.Command, args []string) error {
			return submit(cmd, "")
		},
	}
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submit(cmd, args[0])
		},
	}
	for _, sub := range []*cobra.Command{create, update} {
		sub.Flags().StringVar(&payload.Name, "name", "", "banner name")
		sub.Flags().StringVar(&payload.ImageUrl, "image-url", "", "image URL")
		sub.Flags().StringVar(&imagePath, "image", "", "local image to upload")
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resultErr(sf.banners.Delete(cmd.Context(), args[0]))
		},
	}

	cmd.AddCommand(list, create, update, remove)
	return cmd
}

func newPromoCommand(sf *storefront) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promo",
		Short: "Manage promos",
	}

	var search string
	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List promos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.promos.Load(cmd.Context()); err != nil {
				return err
			}
			table := view.NewList(
				sf.promos.Items,
				func(p promo.Promo) string { return p.Title },
				itemsPerPage,
			)
			table.Search(search)
			table.SetPage(page)
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tTITLE\tCODE\tDISCOUNT\tMIN CLAIM")
			for _, p := range table.PageItems() {
				fmt.Fprintf(
					w,
					"%s\t%s\t%s\t%s\t%s\n",
					p.ID,
					p.Title,
					p.PromoCode,
					p.PromoDiscountPrice.String(),
					p.MinimumClaimPrice.String(),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", table.Page(), table.TotalPages())
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filter by title")
	list.Flags().IntVar(&page, "page", 1, "page number")

	var values promo.FormValues
	submit := func(cmd *cobra.Command, id string) error {
		payload, err := promo.PayloadFromForm(values)
		if err != nil {
			return err
		}
		if id == "" {
			return resultErr(sf.promos.Create(cmd.Context(), payload))
		}
		return resultErr(sf.promos.Update(cmd.Context(), id, payload))
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a promo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return submit(cmd, "")
		},
	}
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a promo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submit(cmd, args[0])
		},
	}
	for _, sub := range []*cobra.Command{create, update} {
		sub.Flags().StringVar(&values.Title, "title", "", "promo title")
		sub.Flags().StringVar(&values.Description, "description", "", "description")
		sub.Flags().StringVar(&values.ImageUrl, "image-url", "", "image URL")
		sub.Flags().StringVar(&values.TermsCondition, "terms", "", "terms and conditions")
		sub.Flags().StringVar(&values.PromoCode, "code", "", "promo code")
		sub.Flags().StringVar(&values.PromoDiscountPrice, "discount", "", "discount amount")
		sub.Flags().StringVar(&values.MinimumClaimPrice, "min-claim", "", "minimum claim amount")
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a promo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resultErr(sf.promos.Delete(cmd.Context(), args[0]))
		},
	}

	cmd.AddCommand(list, create, update, remove)
	return cmd
}
