package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	inErrors "github.com/tourin/storefront/internal/errors"
)

func findCartItem(sf *storefront, id string) error {
	for _, item := range sf.cart.Items() {
		if item.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", inErrors.ErrCartItemNotFound, id)
}

func newCartCommand(sf *storefront) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the activity cart",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show cart items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.cart.Load(cmd.Context()); err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tACTIVITY\tCITY\tPRICE\tQTY")
			for _, item := range sf.cart.Items() {
				fmt.Fprintf(
					w,
					"%s\t%s\t%s\t%s\t%d\n",
					item.ID,
					item.Activity.Title,
					item.Activity.City,
					item.Activity.Price.String(),
					item.Quantity,
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d items in cart\n", len(sf.cart.Items()))
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <activityId>",
		Short: "Add an activity to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resultErr(sf.cart.Add(cmd.Context(), args[0]))
		},
	}

	qty := &cobra.Command{
		Use:   "qty <cartItemId> <quantity>",
		Short: "Change an item's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q with error=%w", args[1], err)
			}
			if err := sf.cart.Load(cmd.Context()); err != nil {
				return err
			}
			if err := findCartItem(sf, args[0]); err != nil {
				return err
			}
			return resultErr(sf.cart.UpdateQuantity(cmd.Context(), args[0], quantity))
		},
	}

	remove := &cobra.Command{
		Use:   "rm <cartItemId>",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.cart.Load(cmd.Context()); err != nil {
				return err
			}
			if err := findCartItem(sf, args[0]); err != nil {
				return err
			}
			return resultErr(sf.cart.Remove(cmd.Context(), args[0]))
		},
	}

	cmd.AddCommand(list, add, qty, remove)
	return cmd
}

func newCheckoutCommand(sf *storefront) *cobra.Command {
	var itemIDs []string
	var paymentMethodID string
	var all bool
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out selected cart items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.cart.Load(cmd.Context()); err != nil {
				return err
			}
			if all {
				sf.cart.ToggleAll(true)
			}
			for _, id := range itemIDs {
				sf.cart.ToggleItem(id)
			}
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"checking out %d items, total %s\n",
				len(sf.cart.Selected()),
				sf.cart.SelectedTotal().String(),
			)
			transactionID, err := sf.flow.Checkout(cmd.Context(), paymentMethodID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "transaction created: %s\n", transactionID)
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"next: storefront transaction show %s\n",
				transactionID,
			)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&itemIDs, "item", nil, "cart item id to select (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "select every cart item")
	cmd.Flags().StringVar(&paymentMethodID, "payment", "", "payment method id")
	return cmd
}

func newTransactionCommand(sf *storefront) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "View and manage transactions",
	}

	payments := &cobra.Command{
		Use:   "payments",
		Short: "List available payment methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			methods, err := sf.transactions.PaymentMethods(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tVA NUMBER")
			for _, m := range methods {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Name, m.VirtualAccountNumber)
			}
			return w.Flush()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List my transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sf.transactions.LoadMine(cmd.Context()); err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tINVOICE\tSTATUS\tTOTAL\tORDERED")
			for _, t := range sf.transactions.Mine() {
				fmt.Fprintf(
					w,
					"%s\t%s\t%s\t%s\t%s\n",
					t.ID,
					t.InvoiceID,
					t.Status,
					t.TotalAmount.String(),
					t.OrderDate.Format("2006-01-02"),
				)
			}
			return w.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := sf.transactions.ByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "invoice %s status=%s total=%s\n", t.InvoiceID, t.Status, t.TotalAmount.String())
			fmt.Fprintf(out, "pay via %s %s before %s\n",
				t.PaymentMethod.Name,
				t.PaymentMethod.VirtualAccountNumber,
				t.ExpiredDate.Format("2006-01-02 15:04"),
			)
			for _, item := range t.Items {
				fmt.Fprintf(out, "  %dx %s @ %s\n", item.Quantity, item.Title, item.Price.String())
			}
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resultErr(sf.transactions.Cancel(cmd.Context(), args[0]))
		},
	}

	var imagePath string
	proof := &cobra.Command{
		Use:   "proof <id>",
		Short: "Upload a payment proof image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := sf.uploadImage(cmd.Context(), imagePath)
			if err != nil {
				return err
			}
			return resultErr(sf.transactions.UpdateProof(cmd.Context(), args[0], url))
		},
	}
	proof.Flags().StringVar(&imagePath, "image", "", "local proof image")

	cmd.AddCommand(payments, list, show, cancel, proof)
	return cmd
}
