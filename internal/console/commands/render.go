package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/WizCoderr/admin.ajastra/internal/api"
	"github.com/WizCoderr/admin.ajastra/internal/session"
	"github.com/WizCoderr/admin.ajastra/internal/shell"
)

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	heading = color.New(color.Bold)
	faint   = color.New(color.Faint)
)

const timeLayout = "2006-01-02 15:04"

func printSuccess(w io.Writer, format string, args ...any) {
	success.Fprintf(w, "✓ "+format+"\n", args...)
}

func printFailure(w io.Writer, err error) {
	failure.Fprintf(w, "✗ %v\n", err)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func money(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

func printDashboard(w io.Writer, stats *shell.DashboardStats) {
	heading.Fprintln(w, "Dashboard")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total sales\t%s\n", money(stats.TotalSales))
	fmt.Fprintf(tw, "Orders\t%d\n", stats.TotalOrders)
	fmt.Fprintf(tw, "Customers\t%d\n", stats.Customers)
	fmt.Fprintf(tw, "Products\t%d (%d in stock, %d featured)\n", stats.Products, stats.InStock, stats.Featured)
	tw.Flush()

	if len(stats.OrdersByStatus) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Orders by status")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, status := range api.OrderStatuses {
			if n, ok := stats.OrdersByStatus[status]; ok {
				fmt.Fprintf(tw, "%s\t%d\n", status, n)
			}
		}
		tw.Flush()
	}

	if len(stats.RecentOrders) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Recent orders")
		printOrders(w, stats.RecentOrders)
	}
}

func printCategories(w io.Writer, categories []api.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRODUCTS\tDESCRIPTION")
	fmt.Fprintln(tw, "──\t────\t────────\t───────────")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.ID, c.Name, len(c.Products), c.Description)
	}
	tw.Flush()
}

func printProducts(w io.Writer, products []api.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tIN STOCK\tFEATURED\tCATEGORY")
	fmt.Fprintln(tw, "──\t────\t─────\t────────\t────────\t────────")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, money(p.Price), yesNo(p.InStock), yesNo(p.Featured), p.CategoryID)
	}
	tw.Flush()
}

func printProduct(w io.Writer, p *api.Product) {
	heading.Fprintln(w, p.Name)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	fmt.Fprintf(tw, "Category\t%s\n", p.CategoryID)
	fmt.Fprintf(tw, "Price\t%s\n", money(p.Price))
	fmt.Fprintf(tw, "Brand\t%s\n", p.Brand)
	fmt.Fprintf(tw, "Material\t%s\n", p.Material)
	fmt.Fprintf(tw, "Fit\t%s\n", p.Fit)
	fmt.Fprintf(tw, "Sizes\t%s\n", strings.Join(p.Sizes, ", "))
	fmt.Fprintf(tw, "Colors\t%s\n", strings.Join(p.Colors, ", "))
	fmt.Fprintf(tw, "In stock\t%s\n", yesNo(p.InStock))
	fmt.Fprintf(tw, "Featured\t%s\n", yesNo(p.Featured))
	for _, img := range p.Images {
		fmt.Fprintf(tw, "Image\t%s\n", img)
	}
	tw.Flush()
	if p.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.Description)
	}
}

func printOrders(w io.Writer, orders []api.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tITEMS\tTOTAL\tSTATUS\tPLACED")
	fmt.Fprintln(tw, "──\t────────\t─────\t─────\t──────\t──────")
	for _, o := range orders {
		customer := o.UserID
		if o.User != nil && o.User.FullName != "" {
			customer = o.User.FullName
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			o.ID, customer, len(o.Items), money(o.Total), o.Status, o.CreatedAt.Format(timeLayout))
	}
	tw.Flush()
}

func printOrderDetails(w io.Writer, o api.Order, products map[string]api.Product) {
	heading.Fprintf(w, "Order %s\n", o.ID)
	fmt.Fprintf(w, "Status: %s   Placed: %s\n", o.Status, o.CreatedAt.Format(timeLayout))
	addr := o.ShippingAddress
	if addr.Street != "" {
		fmt.Fprintf(w, "Ship to: %s, %s, %s %s, %s\n", addr.Street, addr.City, addr.State, addr.PostalCode, addr.Country)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tSIZE\tCOLOR\tQTY\tPRICE")
	for _, item := range o.Items {
		name := item.ProductID
		if p, ok := products[item.ProductID]; ok {
			name = p.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", name, item.Size, item.Color, item.Quantity, money(item.Price))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nSubtotal %s  Tax %s  Shipping %s  Total %s\n",
		money(o.Subtotal), money(o.Tax), money(o.Shipping), money(o.Total))
}

// customersOf returns the non-admin users, newest first
func customersOf(users []api.User) []api.User {
	var customers []api.User
	for _, u := range users {
		if u.Role != session.RoleAdmin {
			customers = append(customers, u)
		}
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})
	return customers
}

func printCustomers(w io.Writer, users []api.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No customers found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tCITY\tJOINED")
	fmt.Fprintln(tw, "──\t────\t─────\t─────\t────\t──────")
	for _, u := range users {
		city := ""
		if u.Address != nil {
			city = u.Address.City
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.FullName, u.Email, u.Phone, city, u.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

func printSliders(w io.Writer, sliders []api.Slider) {
	if len(sliders) == 0 {
		fmt.Fprintln(w, "No sliders found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tMEDIA")
	fmt.Fprintln(tw, "──\t────\t─────")
	for _, s := range sliders {
		mediaType := s.MediaType
		if mediaType == "" {
			mediaType = api.MediaImage
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, mediaType, s.Image)
	}
	tw.Flush()
}
