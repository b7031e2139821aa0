package nav

import "sync"

// Console routes
const (
	PathRoot        = "/"
	PathDashboard   = "/dashboard"
	PathSlider      = "/slider"
	PathOrders      = "/orders"
	PathCustomers   = "/customers"
	PathCategories  = "/categories"
	PathProducts    = "/products"
	PathAllProducts = "/allProducts"
	PathLogin       = "/login"
)

// Item is one entry of the admin shell's side menu
type Item struct {
	Label string
	Path  string
}

// Items lists the admin shell menu in display order
var Items = []Item{
	{Label: "Dashboard", Path: PathDashboard},
	{Label: "Slider", Path: PathSlider},
	{Label: "Orders", Path: PathOrders},
	{Label: "Customers", Path: PathCustomers},
	{Label: "Categories", Path: PathCategories},
	{Label: "Products", Path: PathProducts},
	{Label: "AllProducts", Path: PathAllProducts},
}

// Resolve maps a requested path to the route that will be shown.
// The root and unknown paths land on the dashboard.
func Resolve(path string) string {
	if path == PathLogin {
		return PathLogin
	}
	for _, item := range Items {
		if item.Path == path {
			return path
		}
	}
	return PathDashboard
}

// IsActive reports whether the menu entry for path is highlighted at current
func IsActive(current, path string) bool {
	if current == PathRoot {
		return path == PathDashboard
	}
	return current == path
}

// Navigator moves the console to another route
type Navigator interface {
	Navigate(path string)
}

// History is a Navigator that remembers where it has been
type History struct {
	mu      sync.Mutex
	current string
	visited []string
}

// NewHistory starts at path (resolved)
func NewHistory(path string) *History {
	resolved := Resolve(path)
	return &History{current: resolved, visited: []string{resolved}}
}

func (h *History) Navigate(path string) {
	resolved := Resolve(path)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = resolved
	h.visited = append(h.visited, resolved)
}

// Current returns the active route
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Visited returns every route navigated to, oldest first
func (h *History) Visited() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.visited...)
}
