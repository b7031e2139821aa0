package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := map[string]string{
		"/":            PathDashboard,
		"":             PathDashboard,
		"/dashboard":   PathDashboard,
		"/orders":      PathOrders,
		"/allProducts": PathAllProducts,
		"/login":       PathLogin,
		"/nope":        PathDashboard,
		"/Orders":      PathDashboard,
	}
	for in, want := range cases {
		assert.Equal(t, want, Resolve(in), "Resolve(%q)", in)
	}
}

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive("/", PathDashboard))
	assert.False(t, IsActive("/", PathOrders))
	assert.True(t, IsActive(PathOrders, PathOrders))
	assert.False(t, IsActive(PathOrders, PathDashboard))
}

func TestHistory(t *testing.T) {
	h := NewHistory("/")
	assert.Equal(t, PathDashboard, h.Current())

	h.Navigate(PathSlider)
	h.Navigate("/missing")
	h.Navigate(PathLogin)

	assert.Equal(t, PathLogin, h.Current())
	assert.Equal(t, []string{PathDashboard, PathSlider, PathDashboard, PathLogin}, h.Visited())
}

func TestItemsAreRoutable(t *testing.T) {
	assert.Len(t, Items, 7)
	for _, item := range Items {
		assert.Equal(t, item.Path, Resolve(item.Path))
	}
}
