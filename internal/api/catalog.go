package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

// AddCategoryRequest represents the category creation body.
// Image must already be hosted; the console does not upload media.
type AddCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"category_img"`
}

// ListCategories returns all categories with their products
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if _, err := c.doJSON(ctx, http.MethodGet, pathCategories, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// AddCategory creates a category and returns the server's message
func (c *Client) AddCategory(ctx context.Context, req AddCategoryRequest) (string, error) {
	return c.doJSON(ctx, http.MethodPost, pathCategory, req, nil)
}

// ListProducts returns every product (admin view)
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if _, err := c.doJSON(ctx, http.MethodGet, pathAllProducts, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var product Product
	if _, err := c.doJSON(ctx, http.MethodGet, pathProduct(productID), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductInput holds the fields of a new product
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Material    string
	Fit         string
	Brand       string
	Sizes       []string
	Colors      []string
	InStock     bool
	Featured    bool
	CategoryID  string
}

// Upload is one image file attached to a product
type Upload struct {
	Filename string
	Content  io.Reader
}

// AddProduct creates a product under its category. Fields and images are
// sent as multipart/form-data; sizes and colors travel comma separated.
func (c *Client) AddProduct(ctx context.Context, in ProductInput, images []Upload) (*Product, error) {
	if in.CategoryID == "" {
		return nil, fmt.Errorf("category ID is required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", in.Name},
		{"description", in.Description},
		{"price", strconv.FormatFloat(in.Price, 'f', -1, 64)},
		{"material", in.Material},
		{"fit", in.Fit},
		{"brand", in.Brand},
		{"inStock", strconv.FormatBool(in.InStock)},
		{"featured", strconv.FormatBool(in.Featured)},
		{"categoryId", in.CategoryID},
		{"sizes", strings.Join(in.Sizes, ",")},
		{"colors", strings.Join(in.Colors, ",")},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	for _, img := range images {
		part, err := w.CreateFormFile("images", img.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", img.Filename, err)
		}
		if _, err := io.Copy(part, img.Content); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", img.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathAddProduct(in.CategoryID), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var product Product
	if _, err := c.send(req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product from its category and the catalog
func (c *Client) DeleteProduct(ctx context.Context, productID, categoryID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, pathDeleteProduct(productID, categoryID), nil, nil)
	return err
}

// UpdateStock sets the product's in-stock flag
func (c *Client) UpdateStock(ctx context.Context, productID string, inStock bool) error {
	body := struct {
		InStock bool `json:"inStock"`
	}{InStock: inStock}
	_, err := c.doJSON(ctx, http.MethodPut, pathUpdateStock(productID), body, nil)
	return err
}

// UpdateFeatured sets the product's featured flag
func (c *Client) UpdateFeatured(ctx context.Context, productID string, featured bool) error {
	body := struct {
		Featured bool `json:"featured"`
	}{Featured: featured}
	_, err := c.doJSON(ctx, http.MethodPut, pathUpdateFeatured(productID), body, nil)
	return err
}
