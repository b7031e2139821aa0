package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WizCoderr/admin.ajastra/internal/api"
	"github.com/WizCoderr/admin.ajastra/internal/shell"
)

// gated wraps a page command so it fails fast without a stored token
func gated(app *App, run func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := app.requireSession(); err != nil {
			return err
		}
		return run(cmd.Context(), args)
	}
}

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show sales, order and catalog totals",
		Args:  cobra.NoArgs,
		RunE: gated(app, func(ctx context.Context, args []string) error {
			stats, err := app.pages().Dashboard(ctx)
			if err != nil {
				return err
			}
			printDashboard(app.Out, stats)
			return nil
		}),
	}
}

// NewCategoriesCmd creates the categories command group
func NewCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List and add categories",
		Args:    cobra.NoArgs,
		RunE:    gated(app, func(ctx context.Context, args []string) error { return listCategories(ctx, app) }),
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE:    gated(app, func(ctx context.Context, args []string) error { return listCategories(ctx, app) }),
	})

	var req api.AddCategoryRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		Args:  cobra.NoArgs,
		RunE: gated(app, func(ctx context.Context, args []string) error {
			msg, err := app.Client().AddCategory(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}
			printSuccess(app.Out, "%s", messageOr(msg, "Category added"))
			return nil
		}),
	}
	add.Flags().StringVar(&req.Name, "name", "", "Category name")
	add.Flags().StringVar(&req.Description, "description", "", "Category description")
	add.Flags().StringVar(&req.Image, "image", "", "URL of an already hosted category image")
	add.MarkFlagRequired("name")
	cmd.AddCommand(add)

	return cmd
}

func listCategories(ctx context.Context, app *App) error {
	categories, err := app.Client().ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	printCategories(app.Out, categories)
	return nil
}

// NewProductsCmd creates the products command group
func NewProductsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage the product catalog",
		Args:    cobra.NoArgs,
		RunE:    gated(app, func(ctx context.Context, args []string) error { return listProducts(ctx, app) }),
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all products",
		Args:    cobra.NoArgs,
		RunE:    gated(app, func(ctx context.Context, args []string) error { return listProducts(ctx, app) }),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: gated(app, func(ctx context.Context, args []string) error {
			product, err := app.Client().GetProduct(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get product: %w", err)
			}
			printProduct(app.Out, product)
			return nil
		}),
	})

	cmd.AddCommand(newProductAddCmd(app))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <product-id> <category-id>",
		Short: "Delete a product from its category",
		Args:  cobra.ExactArgs(2),
		RunE: gated(app, func(ctx context.Context, args []string) error {
			if err := app.Client().DeleteProduct(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to delete product: %w", err)
			}
			printSuccess(app.Out, "Product %s deleted", args[0])
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stock <product-id>",
		Short: "Toggle whether a product is in stock",
		Args:  cobra.ExactArgs(1),
		RunE: gated(app, func(ctx context.Context, args []string) error {
			return toggleProduct(ctx, app, args[0], (*shell.Pages).ToggleStock, func(p api.Product) string {
				return "in stock: " + yesNo(p.InStock)
			})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "featured <product-id>",
		Short: "Toggle whether a product is featured",
		Args:  cobra.ExactArgs(1),
		RunE: gated(app, func(ctx context.Context, args []string) error {
			return toggleProduct(ctx, app, args[0], (*shell.Pages).ToggleFeatured, func(p api.Product) string {
				return "featured: " + yesNo(p.Featured)
			})
		}),
	})

	return cmd
}

func listProducts(ctx context.Context, app *App) error {
	products, err := app.Client().ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	printProducts(app.Out, products)
	return nil
}

type toggleFunc func(*shell.Pages, context.Context, api.Product) (api.Product, error)

func toggleProduct(ctx context.Context, app *App, id string, toggle toggleFunc, describe func(api.Product) string) error {
	product, err := app.Client().GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	updated, err := toggle(app.pages(), ctx, *product)
	if err != nil {
		return err
	}

	printSuccess(app.Out, "%s %s", updated.Name, describe(updated))
	return nil
}

func newProductAddCmd(app *App) *cobra.Command {
	var (
		in     api.ProductInput
		images []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product with optional image files",
		Args:  cobra.NoArgs,
		RunE: gated(app, func(ctx context.Context, args []string) error {
			uploads, closeAll, err := openUploads(images)
			if err != nil {
				return err
			}
			defer closeAll()

			product, err := app.Client().AddProduct(ctx, in, uploads)
			if err != nil {
				return fmt.Errorf("failed to add product: %w", err)
			}
			printSuccess(app.Out, "Product %s created (%s)", product.Name, product.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&in.CategoryID, "category", "", "Category ID")
	cmd.Flags().StringVar(&in.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Product description")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "Price")
	cmd.Flags().StringVar(&in.Material, "material", "", "Material")
	cmd.Flags().StringVar(&in.Fit, "fit", api.FitRegular, "Fit (SLIM or REGULAR)")
	cmd.Flags().StringVar(&in.Brand, "brand", "", "Brand")
	cmd.Flags().StringSliceVar(&in.Sizes, "sizes", nil, "Sizes, comma separated")
	cmd.Flags().StringSliceVar(&in.Colors, "colors", nil, "Colors, comma separated")
	cmd.Flags().BoolVar(&in.InStock, "in-stock", true, "Whether the product is in stock")
	cmd.Flags().BoolVar(&in.Featured, "featured", false, "Whether the product is featured")
	cmd.Flags().StringArrayVar(&images, "image", nil, "Image file to upload (repeatable)")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("name")

	return cmd
}

// openUploads opens every image file; closeAll releases them
func openUploads(paths []string) ([]api.Upload, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	uploads := make([]api.Upload, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open image: %w", err)
		}
		files = append(files, f)
		uploads = append(uploads, api.Upload{Filename: filepath.Base(p), Content: f})
	}
	return uploads, closeAll, nil
}

// NewOrdersCmd creates the orders command group
func NewOrdersCmd(app *App) *cobra.Command {
	var status string

	list := func(ctx context.Context, args []string) error {
		status = strings.ToUpper(status)
		if status != "" && !shell.ValidOrderStatus(status) {
			return fmt.Errorf("unknown status filter '%s', must be one of: %s", status, strings.Join(api.OrderStatuses, ", "))
		}

		orders, err := app.Client().ListOrders(ctx)
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		if status != "" {
			filtered := orders[:0]
			for _, o := range orders {
				if o.Status == status {
					filtered = append(filtered, o)
				}
			}
			orders = filtered
		}
		printOrders(app.Out, orders)
		return nil
	}

	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "List orders and update their status",
		Args:    cobra.NoArgs,
		RunE:    gated(app, list),
	}
	cmd.PersistentFlags().StringVar(&status, "status", "", "Only show orders with this status")

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List orders",
		Args:    cobra.NoArgs,
		RunE:    gated(app, list),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Set an order's status",
		Long:  "Set an order's status. Known statuses: " + strings.Join(api.OrderStatuses, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: gated(app, func(ctx context.Context, args []string) error {
			order, err := app.Client().UpdateOrderStatus(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to update order: %w", err)
			}
			printSuccess(app.Out, "Order %s is now %s", order.ID, order.Status)
			return nil
		}),
	})

	return cmd
}

// NewCustomersCmd creates the customers command
func NewCustomersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "List customer accounts",
		Args:    cobra.NoArgs,
		RunE: gated(app, func(ctx context.Context, args []string) error {
			users, err := app.Client().ListUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list customers: %w", err)
			}
			printCustomers(app.Out, customersOf(users))
			return nil
		}),
	}
}

// NewSlidersCmd creates the sliders command group
func NewSlidersCmd(app *App) *cobra.Command {
	list := func(ctx context.Context, args []string) error {
		sliders, err := app.Client().ListSliders(ctx)
		if err != nil {
			return fmt.Errorf("failed to list sliders: %w", err)
		}
		printSliders(app.Out, sliders)
		return nil
	}

	cmd := &cobra.Command{
		Use:     "sliders",
		Aliases: []string{"slider"},
		Short:   "Manage home page sliders",
		Args:    cobra.NoArgs,
		RunE:    gated(app, list),
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sliders",
		Args:    cobra.NoArgs,
		RunE:    gated(app, list),
	})

	var req api.AddSliderRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a slider from already hosted media",
		Args:  cobra.NoArgs,
		RunE: gated(app, func(ctx context.Context, args []string) error {
			msg, err := app.Client().AddSlider(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to add slider: %w", err)
			}
			printSuccess(app.Out, "%s", messageOr(msg, "Slider added"))
			return nil
		}),
	}
	add.Flags().StringVar(&req.MediaURL, "url", "", "Media URL")
	add.Flags().StringVar(&req.MediaType, "type", api.MediaImage, "Media type (image or video)")
	add.MarkFlagRequired("url")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <slider-id>",
		Short: "Delete a slider",
		Args:  cobra.ExactArgs(1),
		RunE: gated(app, func(ctx context.Context, args []string) error {
			if err := app.Client().DeleteSlider(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete slider: %w", err)
			}
			printSuccess(app.Out, "Slider %s deleted", args[0])
			return nil
		}),
	})

	return cmd
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
