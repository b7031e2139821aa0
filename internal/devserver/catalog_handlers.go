package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// AddCategoryRequest represents the category creation body
type AddCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"category_img"`
}

// StockRequest represents the stock toggle body
type StockRequest struct {
	InStock *bool `json:"inStock" binding:"required"`
}

// FeaturedRequest represents the featured toggle body
type FeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

func (s *Server) listCategories(c *gin.Context) {
	var categories []Category
	if err := s.db.Preload("Products").Order("name").Find(&categories).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	respond(c, http.StatusOK, "Categories fetched successfully", categories)
}

func (s *Server) addCategory(c *gin.Context) {
	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var count int64
	if err := s.db.Model(&Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check category name")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("Category '%s' already exists", req.Name)})
		return
	}

	category := &Category{Name: req.Name, Description: req.Description, Image: req.Image}
	if err := s.db.Create(category).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create category")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create category"})
		return
	}

	respond(c, http.StatusCreated, "Category created successfully", category)
}

func (s *Server) listProducts(c *gin.Context) {
	var products []Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	respond(c, http.StatusOK, "Products fetched successfully", products)
}

func (s *Server) getProduct(c *gin.Context) {
	product, ok := s.findProduct(c, c.Param("id"))
	if !ok {
		return
	}
	respond(c, http.StatusOK, "Product fetched successfully", product)
}

// findProduct loads a product or writes the 404/500 response
func (s *Server) findProduct(c *gin.Context, id string) (*Product, bool) {
	var product Product
	if err := FindByID(s.db, id, &product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return nil, false
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("Failed to find product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return nil, false
	}
	return &product, true
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// addProduct creates a product from a multipart form. Uploaded images are
// not stored; each is recorded under a generated media path.
func (s *Server) addProduct(c *gin.Context) {
	categoryID := c.Param("id")

	var category Category
	if err := FindByID(s.db, categoryID, &category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find category")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Expected multipart form data"})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product name is required"})
		return
	}

	price, err := strconv.ParseFloat(c.DefaultPostForm("price", "0"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
		return
	}

	inStock, _ := strconv.ParseBool(c.DefaultPostForm("inStock", "true"))
	featured, _ := strconv.ParseBool(c.DefaultPostForm("featured", "false"))

	product := &Product{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		CategoryID:  category.ID,
		Sizes:       splitList(c.PostForm("sizes")),
		Colors:      splitList(c.PostForm("colors")),
		Material:    c.PostForm("material"),
		Fit:         c.PostForm("fit"),
		Brand:       c.PostForm("brand"),
		InStock:     inStock,
		Featured:    featured,
	}
	for _, file := range form.File["images"] {
		product.Images = append(product.Images, path.Join("/media", ulid.Make().String(), path.Base(file.Filename)))
	}

	if err := s.db.Create(product).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}

	s.logger.Info().Str("product_id", product.ID).Str("category_id", category.ID).Int("images", len(product.Images)).Msg("Product created")
	respond(c, http.StatusCreated, "Product created successfully", product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	product, ok := s.findProduct(c, c.Param("id"))
	if !ok {
		return
	}
	if product.CategoryID != c.Param("categoryId") {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in category"})
		return
	}

	if err := s.db.Delete(product).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}

	respond(c, http.StatusOK, "Product deleted successfully", nil)
}

func (s *Server) updateStock(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.updateProductFlag(c, "in_stock", *req.InStock)
}

func (s *Server) updateFeatured(c *gin.Context) {
	var req FeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.updateProductFlag(c, "featured", *req.Featured)
}

func (s *Server) updateProductFlag(c *gin.Context, column string, value bool) {
	product, ok := s.findProduct(c, c.Param("id"))
	if !ok {
		return
	}

	if err := s.db.Model(product).Update(column, value).Error; err != nil {
		s.logger.Error().Err(err).Str("column", column).Msg("Failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}
	if err := FindByID(s.db, product.ID, product); err != nil {
		s.logger.Error().Err(err).Msg("Failed to reload product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	respond(c, http.StatusOK, "Product updated successfully", product)
}
