package shell

import (
	"context"
	"fmt"
	"sort"

	"github.com/WizCoderr/admin.ajastra/internal/api"
	"github.com/WizCoderr/admin.ajastra/internal/session"
)

// AdminAPI is the part of the API client the routed pages use
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]api.User, error)
	ListCategories(ctx context.Context) ([]api.Category, error)
	AddCategory(ctx context.Context, req api.AddCategoryRequest) (string, error)
	ListProducts(ctx context.Context) ([]api.Product, error)
	GetProduct(ctx context.Context, productID string) (*api.Product, error)
	AddProduct(ctx context.Context, in api.ProductInput, images []api.Upload) (*api.Product, error)
	DeleteProduct(ctx context.Context, productID, categoryID string) error
	UpdateStock(ctx context.Context, productID string, inStock bool) error
	UpdateFeatured(ctx context.Context, productID string, featured bool) error
	ListOrders(ctx context.Context) ([]api.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*api.Order, error)
	ListSliders(ctx context.Context) ([]api.Slider, error)
	AddSlider(ctx context.Context, req api.AddSliderRequest) (string, error)
	DeleteSlider(ctx context.Context, sliderID string) error
}

const recentOrderCount = 5

// DashboardStats summarises the shop for the dashboard page
type DashboardStats struct {
	TotalSales     float64
	TotalOrders    int
	Customers      int
	Products       int
	InStock        int
	Featured       int
	OrdersByStatus map[string]int
	RecentOrders   []api.Order
}

// Pages runs the data side of each admin route. Failures are returned to
// the caller per call; nothing is retried.
type Pages struct {
	api AdminAPI
}

// NewPages creates the page actions backed by client
func NewPages(client AdminAPI) *Pages {
	return &Pages{api: client}
}

// API returns the underlying client
func (p *Pages) API() AdminAPI {
	return p.api
}

// Dashboard fetches orders, products and users and summarises them
func (p *Pages) Dashboard(ctx context.Context) (*DashboardStats, error) {
	orders, err := p.api.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	products, err := p.api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	users, err := p.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	stats := Summarize(orders, products, users)
	return &stats, nil
}

// Summarize computes dashboard figures. Cancelled and refunded orders count
// as orders but not as sales.
func Summarize(orders []api.Order, products []api.Product, users []api.User) DashboardStats {
	stats := DashboardStats{
		TotalOrders:    len(orders),
		Products:       len(products),
		OrdersByStatus: make(map[string]int),
	}

	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		if o.Status == api.OrderCancelled || o.Status == api.OrderRefunded {
			continue
		}
		stats.TotalSales += o.Total
	}

	for _, pr := range products {
		if pr.InStock {
			stats.InStock++
		}
		if pr.Featured {
			stats.Featured++
		}
	}

	for _, u := range users {
		if u.Role != session.RoleAdmin {
			stats.Customers++
		}
	}

	recent := append([]api.Order(nil), orders...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentOrderCount {
		recent = recent[:recentOrderCount]
	}
	stats.RecentOrders = recent

	return stats
}

// ToggleStock flips the product's in-stock flag on the server and returns
// the updated copy
func (p *Pages) ToggleStock(ctx context.Context, product api.Product) (api.Product, error) {
	next := !product.InStock
	if err := p.api.UpdateStock(ctx, product.ID, next); err != nil {
		return product, fmt.Errorf("failed to update product stock: %w", err)
	}
	product.InStock = next
	return product, nil
}

// ToggleFeatured flips the product's featured flag on the server and
// returns the updated copy
func (p *Pages) ToggleFeatured(ctx context.Context, product api.Product) (api.Product, error) {
	next := !product.Featured
	if err := p.api.UpdateFeatured(ctx, product.ID, next); err != nil {
		return product, fmt.Errorf("failed to update product featured: %w", err)
	}
	product.Featured = next
	return product, nil
}

// OrderDetails resolves the products referenced by an order's items.
// Items whose product cannot be fetched are skipped, matching how the
// order dialog tolerates missing products.
func (p *Pages) OrderDetails(ctx context.Context, order api.Order) map[string]api.Product {
	products := make(map[string]api.Product)
	for _, item := range order.Items {
		if item.Product != nil {
			products[item.ProductID] = *item.Product
			continue
		}
		if _, seen := products[item.ProductID]; seen {
			continue
		}
		product, err := p.api.GetProduct(ctx, item.ProductID)
		if err != nil {
			continue
		}
		products[item.ProductID] = *product
	}
	return products
}

// FindProduct looks a product up by ID
func FindProduct(products []api.Product, id string) (api.Product, bool) {
	for _, pr := range products {
		if pr.ID == id {
			return pr, true
		}
	}
	return api.Product{}, false
}

// ValidOrderStatus reports whether status is one the API understands
func ValidOrderStatus(status string) bool {
	for _, s := range api.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
