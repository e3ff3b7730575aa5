package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xenking/backoffice/internal/client"
	"github.com/xenking/backoffice/internal/domain/customer"
	"github.com/xenking/backoffice/internal/domain/order"
	"github.com/xenking/backoffice/internal/domain/product"
)

func amount(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

var toneColors = map[order.Tone]string{
	order.ToneSuccess: "\x1b[32m",
	order.ToneInfo:    "\x1b[36m",
	order.ToneWarning: "\x1b[33m",
	order.ToneError:   "\x1b[31m",
}

// badge renders an order status, colored by its tone when color is set.
func badge(s order.Status, color bool) string {
	if !color {
		return string(s)
	}
	return toneColors[s.Tone()] + string(s) + "\x1b[0m"
}

var orderColumns = []string{"ID", "CUSTOMER", "DATE", "TOTAL", "STATUS", "ITEMS"}

func orderRow(opts *options) func(order.Order) []string {
	return func(o order.Order) []string {
		return []string{
			o.ID, o.Customer.Name, o.OrderDate, amount(o.TotalAmount),
			badge(o.Status, opts.color), strconv.Itoa(o.ItemCount),
		}
	}
}

func orderResource(opts *options) resource[order.Order, order.Order] {
	return resource[order.Order, order.Order]{
		name:     "orders",
		columns:  orderColumns,
		row:      orderRow(opts),
		key:      order.Key,
		repo:     func(c *client.Client) repository[order.Order] { return c.Orders() },
		edit:     order.Schema,
		create:   order.Schema,
		template: order.Template,
		build:    func(o order.Order, _ time.Time) order.Order { return o },
		describe: func(w io.Writer, o order.Order) {
			if len(o.Items) == 0 {
				return
			}
			_, _ = fmt.Fprintln(w, "  Items:")
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, it := range o.Items {
				_, _ = fmt.Fprintf(tw, "    %s\t%s\tx%d\t%s\n", it.ProductID, it.ProductName, it.Quantity, amount(it.Price))
			}
			_ = tw.Flush()
		},
	}
}

func productResource() resource[product.Product, product.Product] {
	return resource[product.Product, product.Product]{
		name:    "products",
		columns: []string{"ID", "SKU", "NAME", "CATEGORY", "PRICE", "STOCK", "STATUS", "RATING"},
		row: func(p product.Product) []string {
			return []string{
				p.ID, p.SKU, p.Name, p.Category, product.FormatPrice(p.Price),
				strconv.Itoa(p.Stock), string(p.Status), strconv.FormatFloat(p.Rating, 'f', -1, 64),
			}
		},
		key:      product.Key,
		repo:     func(c *client.Client) repository[product.Product] { return c.Products() },
		edit:     product.EditSchema,
		create:   product.CreateSchema,
		template: func(time.Time) product.Product { return product.Template() },
		build:    func(p product.Product, _ time.Time) product.Product { return p },
	}
}

func customerResource() resource[customer.Customer, customer.Form] {
	return resource[customer.Customer, customer.Form]{
		name:    "customers",
		columns: []string{"ID", "NAME", "EMAIL", "STATUS", "ORDERS", "CREATED"},
		row: func(c customer.Customer) []string {
			return []string{c.ID, c.Name, c.Email, string(c.Status), strconv.Itoa(c.TotalOrders), c.CreatedAt}
		},
		key:      customer.Key,
		repo:     func(c *client.Client) repository[customer.Customer] { return c.Customers() },
		edit:     customer.EditSchema,
		create:   customer.CreateSchema,
		template: func(time.Time) customer.Form { return customer.Template() },
		build:    customer.FromForm,
		extra: func(o *options) []*cobra.Command {
			return []*cobra.Command{customerOrdersCmd(o)}
		},
	}
}

func customerOrdersCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "orders <id>",
		Short: "List the orders of one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			ctx, cancel := o.context(cmd)
			defer cancel()

			orders, err := c.CustomerOrders(ctx, args[0])
			if err != nil {
				return errors.Wrapf(err, "list orders of %s", args[0])
			}
			if len(orders) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Customer %s has no orders.\n", args[0])
				return nil
			}
			return writeTable(cmd.OutOrStdout(), orderColumns, orders, orderRow(o))
		},
	}
}
