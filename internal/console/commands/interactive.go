package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WizCoderr/admin.ajastra/internal/api"
	"github.com/WizCoderr/admin.ajastra/internal/gate"
	"github.com/WizCoderr/admin.ajastra/internal/login"
	"github.com/WizCoderr/admin.ajastra/internal/nav"
	"github.com/WizCoderr/admin.ajastra/internal/shell"
)

const (
	choiceBack   = "Back"
	choiceLogout = "Log out"
	choiceQuit   = "Quit"
)

// NewShellCmd creates the interactive console command
func NewShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive admin console",
		Long: `Open the interactive admin console.

Without a stored session the console shows the login form; once signed in it
shows the admin menu until you log out or quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), app)
		},
	}
}

// console holds the state of one interactive session
type console struct {
	app     *App
	history *nav.History
	admin   *shell.Shell
	pages   *shell.Pages
	login   *login.Flow
}

func runShell(ctx context.Context, app *App) error {
	if err := app.Init(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	g := gate.New(app.Store(), app.Logger)
	defer g.Close()

	history := nav.NewHistory(nav.PathRoot)
	c := &console{
		app:     app,
		history: history,
		admin:   shell.New(app.Client(), app.Store(), history, app.Logger),
		pages:   app.pages(),
		login:   login.NewFlow(app.Client(), app.Store(), history, app.Logger),
	}

	g.OnTransition(func(from, to gate.State) {
		if to == gate.Unauthenticated {
			fmt.Fprintln(app.Out, "Session ended.")
		}
	})

	return g.Run(ctx, gate.ViewFunc(c.adminView), gate.ViewFunc(c.loginView))
}

func required(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("required")
	}
	return nil
}

func (c *console) loginView(ctx context.Context) error {
	choice, err := c.app.Prompt.Select("Ajastra admin", []string{"Log in", choiceQuit}, 0)
	if err != nil {
		return err
	}
	if choice == 1 {
		return gate.ErrQuit
	}

	var form login.Form
	fields := []struct {
		label string
		dst   *string
		mask  bool
	}{
		{"Full name", &form.FullName, false},
		{"Phone number", &form.PhoneNumber, false},
		{"Email", &form.Email, false},
		{"Password", &form.Password, true},
	}
	for _, f := range fields {
		value, err := c.app.Prompt.Input(f.label, required, f.mask)
		if err != nil {
			return err
		}
		*f.dst = value
	}

	result, err := c.login.Submit(ctx, form)
	if err != nil {
		printFailure(c.app.Out, err)
		return nil
	}

	printSuccess(c.app.Out, "Welcome, %s", result.User.FullName)
	return nil
}

func (c *console) adminView(ctx context.Context) error {
	current := c.history.Current()

	labels := make([]string, 0, len(nav.Items)+2)
	cursor := 0
	for i, item := range nav.Items {
		labels = append(labels, item.Label)
		if nav.IsActive(current, item.Path) {
			cursor = i
		}
	}
	labels = append(labels, choiceLogout, choiceQuit)

	title := "Ajastra admin"
	if role := c.admin.Role(); role != "" {
		title = fmt.Sprintf("Ajastra admin (%s)", role)
	}

	choice, err := c.app.Prompt.Select(title, labels, cursor)
	if err != nil {
		return err
	}

	switch labels[choice] {
	case choiceQuit:
		return gate.ErrQuit
	case choiceLogout:
		msg, err := c.admin.Logout(ctx)
		if err != nil {
			printFailure(c.app.Out, err)
			return nil
		}
		printSuccess(c.app.Out, "%s", messageOr(msg, "Logged out"))
		return nil
	}

	path := nav.Items[choice].Path
	c.admin.Navigate(path)
	if err := c.showPage(ctx, path); err != nil {
		if errors.Is(err, gate.ErrQuit) {
			return err
		}
		printFailure(c.app.Out, err)
	}
	return nil
}

func (c *console) showPage(ctx context.Context, path string) error {
	switch nav.Resolve(path) {
	case nav.PathSlider:
		return c.sliderPage(ctx)
	case nav.PathOrders:
		return c.ordersPage(ctx)
	case nav.PathCustomers:
		users, err := c.app.Client().ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list customers: %w", err)
		}
		printCustomers(c.app.Out, customersOf(users))
		return nil
	case nav.PathCategories:
		return c.categoriesPage(ctx)
	case nav.PathProducts:
		return c.addProductPage(ctx)
	case nav.PathAllProducts:
		return c.allProductsPage(ctx)
	default:
		stats, err := c.pages.Dashboard(ctx)
		if err != nil {
			return err
		}
		printDashboard(c.app.Out, stats)
		return nil
	}
}

func (c *console) sliderPage(ctx context.Context) error {
	sliders, err := c.app.Client().ListSliders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sliders: %w", err)
	}
	printSliders(c.app.Out, sliders)

	choice, err := c.app.Prompt.Select("Sliders", []string{choiceBack, "Add slider", "Delete slider"}, 0)
	if err != nil || choice == 0 {
		return err
	}

	if choice == 1 {
		url, err := c.app.Prompt.Input("Media URL", required, false)
		if err != nil {
			return err
		}
		types := []string{api.MediaImage, api.MediaVideo}
		t, err := c.app.Prompt.Select("Media type", types, 0)
		if err != nil {
			return err
		}
		msg, err := c.app.Client().AddSlider(ctx, api.AddSliderRequest{MediaURL: url, MediaType: types[t]})
		if err != nil {
			return fmt.Errorf("failed to add slider: %w", err)
		}
		printSuccess(c.app.Out, "%s", messageOr(msg, "Slider added"))
		return nil
	}

	if len(sliders) == 0 {
		return nil
	}
	labels := []string{choiceBack}
	for _, s := range sliders {
		labels = append(labels, fmt.Sprintf("%s  %s", shortID(s.ID), s.Image))
	}
	pick, err := c.app.Prompt.Select("Delete which slider?", labels, 0)
	if err != nil || pick == 0 {
		return err
	}
	slider := sliders[pick-1]
	if err := c.app.Client().DeleteSlider(ctx, slider.ID); err != nil {
		return fmt.Errorf("failed to delete slider: %w", err)
	}
	printSuccess(c.app.Out, "Slider deleted")
	return nil
}

func (c *console) ordersPage(ctx context.Context) error {
	orders, err := c.app.Client().ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	printOrders(c.app.Out, orders)
	if len(orders) == 0 {
		return nil
	}

	labels := []string{choiceBack}
	for _, o := range orders {
		labels = append(labels, fmt.Sprintf("%s  %-10s %s", shortID(o.ID), o.Status, money(o.Total)))
	}
	pick, err := c.app.Prompt.Select("Open order", labels, 0)
	if err != nil || pick == 0 {
		return err
	}

	order := orders[pick-1]
	printOrderDetails(c.app.Out, order, c.pages.OrderDetails(ctx, order))

	statuses := append([]string{"Keep " + order.Status}, api.OrderStatuses...)
	s, err := c.app.Prompt.Select("Set status", statuses, 0)
	if err != nil || s == 0 {
		return err
	}

	updated, err := c.app.Client().UpdateOrderStatus(ctx, order.ID, statuses[s])
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	printSuccess(c.app.Out, "Order %s is now %s", shortID(updated.ID), updated.Status)
	return nil
}

func (c *console) categoriesPage(ctx context.Context) error {
	categories, err := c.app.Client().ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	printCategories(c.app.Out, categories)

	choice, err := c.app.Prompt.Select("Categories", []string{choiceBack, "Add category"}, 0)
	if err != nil || choice == 0 {
		return err
	}

	var req api.AddCategoryRequest
	if req.Name, err = c.app.Prompt.Input("Name", required, false); err != nil {
		return err
	}
	if req.Description, err = c.app.Prompt.Input("Description", nil, false); err != nil {
		return err
	}
	if req.Image, err = c.app.Prompt.Input("Image URL", nil, false); err != nil {
		return err
	}

	msg, err := c.app.Client().AddCategory(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	printSuccess(c.app.Out, "%s", messageOr(msg, "Category added"))
	return nil
}

func validPrice(value string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v < 0 {
		return errors.New("enter a non-negative number")
	}
	return nil
}

func splitCSV(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *console) addProductPage(ctx context.Context) error {
	categories, err := c.app.Client().ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		fmt.Fprintln(c.app.Out, "No categories yet. Add a category first.")
		return nil
	}

	labels := []string{choiceBack}
	for _, cat := range categories {
		labels = append(labels, cat.Name)
	}
	pick, err := c.app.Prompt.Select("New product in category", labels, 0)
	if err != nil || pick == 0 {
		return err
	}

	in := api.ProductInput{CategoryID: categories[pick-1].ID, InStock: true}
	if in.Name, err = c.app.Prompt.Input("Name", required, false); err != nil {
		return err
	}
	price, err := c.app.Prompt.Input("Price", validPrice, false)
	if err != nil {
		return err
	}
	in.Price, _ = strconv.ParseFloat(strings.TrimSpace(price), 64)
	if in.Description, err = c.app.Prompt.Input("Description", nil, false); err != nil {
		return err
	}
	if in.Brand, err = c.app.Prompt.Input("Brand", nil, false); err != nil {
		return err
	}
	if in.Material, err = c.app.Prompt.Input("Material", nil, false); err != nil {
		return err
	}
	fits := []string{api.FitRegular, api.FitSlim}
	fit, err := c.app.Prompt.Select("Fit", fits, 0)
	if err != nil {
		return err
	}
	in.Fit = fits[fit]
	sizes, err := c.app.Prompt.Input("Sizes (comma separated)", nil, false)
	if err != nil {
		return err
	}
	in.Sizes = splitCSV(sizes)
	colors, err := c.app.Prompt.Input("Colors (comma separated)", nil, false)
	if err != nil {
		return err
	}
	in.Colors = splitCSV(colors)

	product, err := c.app.Client().AddProduct(ctx, in, nil)
	if err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}
	printSuccess(c.app.Out, "Product %s created", product.Name)
	return nil
}

func (c *console) allProductsPage(ctx context.Context) error {
	products, err := c.app.Client().ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	printProducts(c.app.Out, products)
	if len(products) == 0 {
		return nil
	}

	labels := []string{choiceBack}
	for _, p := range products {
		labels = append(labels, fmt.Sprintf("%s  %s", shortID(p.ID), p.Name))
	}
	pick, err := c.app.Prompt.Select("Open product", labels, 0)
	if err != nil || pick == 0 {
		return err
	}

	product := products[pick-1]
	printProduct(c.app.Out, &product)

	actions := []string{choiceBack, "Toggle stock", "Toggle featured", "Delete"}
	action, err := c.app.Prompt.Select(product.Name, actions, 0)
	if err != nil || action == 0 {
		return err
	}

	switch action {
	case 1:
		updated, err := c.pages.ToggleStock(ctx, product)
		if err != nil {
			return err
		}
		printSuccess(c.app.Out, "%s in stock: %s", updated.Name, yesNo(updated.InStock))
	case 2:
		updated, err := c.pages.ToggleFeatured(ctx, product)
		if err != nil {
			return err
		}
		printSuccess(c.app.Out, "%s featured: %s", updated.Name, yesNo(updated.Featured))
	case 3:
		if err := c.app.Client().DeleteProduct(ctx, product.ID, product.CategoryID); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		faint.Fprintf(c.app.Out, "%s removed from the catalog\n", product.Name)
		printSuccess(c.app.Out, "Product deleted")
	}
	return nil
}
