package devserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WizCoderr/admin.ajastra/internal/api"
	"github.com/WizCoderr/admin.ajastra/internal/config"
	"github.com/WizCoderr/admin.ajastra/internal/login"
	"github.com/WizCoderr/admin.ajastra/internal/nav"
	"github.com/WizCoderr/admin.ajastra/internal/session"
	"github.com/WizCoderr/admin.ajastra/internal/shell"
)

func newTestServer(t *testing.T, seed bool) (*Server, *httptest.Server) {
	t.Helper()

	srv, err := New(config.DevServerConfig{
		DatabaseURL: ":memory:",
		JWTSecret:   "test-secret",
		Seed:        seed,
	}, zerolog.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return srv, ts
}

func adminForm() login.Form {
	return login.Form{
		FullName:    "Dev Admin",
		PhoneNumber: "9999999999",
		Email:       "admin@ajastra.dev",
		Password:    "admin-password",
	}
}

// signIn registers the admin through the login flow and returns a client
// bound to the resulting session
func signIn(t *testing.T, ts *httptest.Server) (*api.Client, *session.Watched) {
	t.Helper()

	store := session.Watch(session.NewMemoryStore())
	client := api.New(ts.URL, store)

	_, err := login.NewFlow(client, store, nav.NewHistory(nav.PathLogin), zerolog.Nop()).
		Submit(context.Background(), adminForm())
	require.NoError(t, err)
	return client, store
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "online")
}

func TestRegister_CreatesAdminThenSignsIn(t *testing.T) {
	_, ts := newTestServer(t, false)
	ctx := context.Background()
	client := api.New(ts.URL, session.NewMemoryStore())

	form := adminForm()
	req := api.RegisterRequest{FullName: form.FullName, PhoneNumber: form.PhoneNumber, Email: form.Email, Password: form.Password}

	first, err := client.Register(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, first.Token)
	assert.Equal(t, "ADMIN", first.User.Role)
	assert.Equal(t, "Admin registered successfully", first.Message)

	second, err := client.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Login successful", second.Message)

	req.Password = "wrong"
	_, err = client.Register(ctx, req)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))

	req.PhoneNumber = "123"
	_, err = client.Register(ctx, req)
	assert.Equal(t, http.StatusBadRequest, api.StatusCode(err))
}

func TestAdminRoutesRequireBearer(t *testing.T) {
	srv, ts := newTestServer(t, true)
	ctx := context.Background()

	store := session.NewMemoryStore()
	client := api.New(ts.URL, store)

	_, err := client.ListProducts(ctx)
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	_, ok := store.Token()
	assert.False(t, ok)

	require.NoError(t, store.SetToken("not-a-jwt"))
	_, err = client.ListOrders(ctx)
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	token, _ := store.Token()
	assert.Equal(t, "not-a-jwt", token, "rejected requests never clear the token")

	var customer User
	require.NoError(t, srv.DB().Where("email = ?", SeedCustomerEmail).First(&customer).Error)
	customerToken, err := srv.tokens.GenerateToken(&customer)
	require.NoError(t, err)
	require.NoError(t, store.SetToken(customerToken))
	_, err = client.ListUsers(ctx)
	assert.Equal(t, http.StatusForbidden, api.StatusCode(err))

	// public routes work without credentials
	anonymous := api.New(ts.URL, session.NewMemoryStore())
	categories, err := anonymous.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestShellLogout_EndsSession(t *testing.T) {
	_, ts := newTestServer(t, false)
	ctx := context.Background()
	client, store := signIn(t, ts)

	token, ok := store.Token()
	require.True(t, ok)

	history := nav.NewHistory(nav.PathDashboard)
	msg, err := shell.New(client, store, history, zerolog.Nop()).Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully", msg)
	assert.Equal(t, nav.PathLogin, history.Current())
	assert.False(t, session.Load(store).Authenticated())
	role, _ := store.Role()
	assert.Equal(t, "ADMIN", role, "role slot is left in place")

	// the server no longer honours the old token
	require.NoError(t, store.SetToken(token))
	_, err = client.ListUsers(ctx)
	assert.True(t, api.IsUnauthorized(err))
}

func TestShellLogout_ServerRejectionKeepsToken(t *testing.T) {
	_, ts := newTestServer(t, false)
	ctx := context.Background()
	client, store := signIn(t, ts)

	// end the server session behind the shell's back
	_, err := client.Logout(ctx)
	require.NoError(t, err)

	history := nav.NewHistory(nav.PathOrders)
	_, err = shell.New(client, store, history, zerolog.Nop()).Logout(ctx)
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	assert.True(t, session.Load(store).Authenticated())
	assert.Equal(t, nav.PathOrders, history.Current())
}

func TestCatalog(t *testing.T) {
	_, ts := newTestServer(t, false)
	ctx := context.Background()
	client, _ := signIn(t, ts)

	msg, err := client.AddCategory(ctx, api.AddCategoryRequest{Name: "Jackets", Description: "Outerwear", Image: "https://media.example/jackets.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Category created successfully", msg)

	_, err = client.AddCategory(ctx, api.AddCategoryRequest{Name: "Jackets"})
	assert.Equal(t, http.StatusConflict, api.StatusCode(err))

	categories, err := client.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	categoryID := categories[0].ID
	assert.Equal(t, "https://media.example/jackets.jpg", categories[0].Image)

	product, err := client.AddProduct(ctx, api.ProductInput{
		Name:       "Bomber",
		Price:      2999.5,
		Fit:        api.FitRegular,
		Sizes:      []string{"M", "L"},
		Colors:     []string{"olive"},
		InStock:    true,
		CategoryID: categoryID,
	}, []api.Upload{{Filename: "bomber.jpg", Content: strings.NewReader("jpeg-bytes")}})
	require.NoError(t, err)
	assert.Equal(t, "Bomber", product.Name)
	assert.Equal(t, 2999.5, product.Price)
	assert.Equal(t, []string{"M", "L"}, product.Sizes)
	require.Len(t, product.Images, 1)
	assert.True(t, strings.HasSuffix(product.Images[0], "/bomber.jpg"))

	_, err = client.AddProduct(ctx, api.ProductInput{Name: "Ghost", CategoryID: "missing"}, nil)
	assert.Equal(t, http.StatusNotFound, api.StatusCode(err))

	require.NoError(t, client.UpdateStock(ctx, product.ID, false))
	require.NoError(t, client.UpdateFeatured(ctx, product.ID, true))

	fetched, err := client.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, fetched.InStock)
	assert.True(t, fetched.Featured)

	err = client.DeleteProduct(ctx, product.ID, "other-category")
	assert.Equal(t, http.StatusNotFound, api.StatusCode(err))
	require.NoError(t, client.DeleteProduct(ctx, product.ID, categoryID))

	products, err := client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestOrdersAndCustomers(t *testing.T) {
	_, ts := newTestServer(t, true)
	ctx := context.Background()
	client, _ := signIn(t, ts)

	orders, err := client.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 4)
	require.NotEmpty(t, orders[0].Items)
	assert.NotNil(t, orders[0].Items[0].Product)
	assert.NotNil(t, orders[0].User)

	updated, err := client.UpdateOrderStatus(ctx, orders[0].ID, api.OrderRefunded)
	require.NoError(t, err)
	assert.Equal(t, api.OrderRefunded, updated.Status)

	_, err = client.UpdateOrderStatus(ctx, orders[0].ID, "LOST")
	assert.Equal(t, http.StatusBadRequest, api.StatusCode(err))

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	var customerID string
	for _, u := range users {
		if u.Role == "USER" {
			customerID = u.ID
			require.NotNil(t, u.Address)
			assert.Equal(t, "Bengaluru", u.Address.City)
		}
	}
	require.NotEmpty(t, customerID)

	saved, err := client.AddAddress(ctx, customerID, api.Address{Street: "1 Park St", City: "Kolkata", Country: "IN"})
	require.NoError(t, err)
	assert.Equal(t, "Kolkata", saved.City)

	stats, err := shell.NewPages(client).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 1, stats.Customers)
	assert.Equal(t, 3, stats.Products)
	assert.Equal(t, 2, stats.InStock)
	assert.Equal(t, 1, stats.Featured)
}

func TestSliders(t *testing.T) {
	_, ts := newTestServer(t, false)
	ctx := context.Background()
	client, _ := signIn(t, ts)

	_, err := client.AddSlider(ctx, api.AddSliderRequest{MediaURL: "https://media.example/a.mp4", MediaType: api.MediaVideo})
	require.NoError(t, err)

	_, err = client.AddSlider(ctx, api.AddSliderRequest{MediaURL: "https://media.example/b.gif", MediaType: "gif"})
	assert.Equal(t, http.StatusBadRequest, api.StatusCode(err))

	sliders, err := client.ListSliders(ctx)
	require.NoError(t, err)
	require.Len(t, sliders, 1)
	assert.Equal(t, "video", sliders[0].MediaType)

	require.NoError(t, client.DeleteSlider(ctx, sliders[0].ID))
	err = client.DeleteSlider(ctx, sliders[0].ID)
	assert.Equal(t, http.StatusNotFound, api.StatusCode(err))
}

func TestSeed_Idempotent(t *testing.T) {
	srv, _ := newTestServer(t, true)
	require.NoError(t, srv.Seed())

	var count int64
	require.NoError(t, srv.DB().Model(&Category{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestTokenIssuer(t *testing.T) {
	issuer, err := newTokenIssuer("", DefaultTokenTTL)
	require.NoError(t, err)
	assert.Len(t, issuer.secret, 64)

	token, err := issuer.GenerateToken(&User{BaseModel: BaseModel{ID: "u1"}, Email: "a@b.c", Role: RoleAdmin})
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	other, err := newTokenIssuer("different", DefaultTokenTTL)
	require.NoError(t, err)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	_, err := extractBearerToken("")
	assert.ErrorIs(t, err, ErrMissingAuthHeader)
	_, err = extractBearerToken("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidAuthFormat)
	_, err = extractBearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrEmptyToken)
	token, err := extractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
