package devserver

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Role values stored on users
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents a shop account
type User struct {
	BaseModel
	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	FullName     string   `json:"fullName"`
	Phone        string   `json:"phone"`
	Role         string   `json:"role" gorm:"not null;default:USER"`
	Address      *Address `json:"address,omitempty" gorm:"foreignKey:UserID"`
}

// PostalAddress is the address value shared by users and orders
type PostalAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Address is the saved address of a user (one per user)
type Address struct {
	BaseModel
	UserID string `json:"userId" gorm:"uniqueIndex;not null"`
	PostalAddress
}

// Category groups products
type Category struct {
	BaseModel
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Products    []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// Product is a catalog item
type Product struct {
	BaseModel
	Name        string   `json:"name" gorm:"not null"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images" gorm:"serializer:json"`
	CategoryID  string   `json:"categoryId" gorm:"index;not null"`
	Sizes       []string `json:"sizes" gorm:"serializer:json"`
	Colors      []string `json:"colors" gorm:"serializer:json"`
	Material    string   `json:"material"`
	Fit         string   `json:"fit"`
	Brand       string   `json:"brand"`
	InStock     bool     `json:"inStock" gorm:"not null"`
	Featured    bool     `json:"featured" gorm:"not null"`
}

// Order status values
const (
	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
	OrderRefunded   = "REFUNDED"
)

// Order is a customer order
type Order struct {
	BaseModel
	UserID          string        `json:"userId" gorm:"index;not null"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	Shipping        float64       `json:"shipping"`
	Total           float64       `json:"total"`
	Status          string        `json:"status" gorm:"not null;default:PENDING"`
	ShippingAddress PostalAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  PostalAddress `json:"billingAddress" gorm:"embedded;embeddedPrefix:billing_"`
	Items           []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	User            *User         `json:"user,omitempty"`
}

// OrderItem is one line of an order
type OrderItem struct {
	BaseModel
	OrderID   string   `json:"orderId" gorm:"index;not null"`
	ProductID string   `json:"productId" gorm:"not null"`
	Quantity  int      `json:"quantity"`
	Size      string   `json:"size"`
	Color     string   `json:"color"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// Slider is a home page carousel entry
type Slider struct {
	BaseModel
	Image     string `json:"image" gorm:"not null"`
	MediaType string `json:"mediaType" gorm:"not null;default:image"`
}

// RevokedToken records a token ended by logout until it would have expired
type RevokedToken struct {
	TokenID   string    `gorm:"primaryKey"`
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt time.Time `gorm:"autoCreateTime"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&User{}, &Address{}, &Category{}, &Product{}, &Order{}, &OrderItem{}, &Slider{}, &RevokedToken{},
	}

	return db.AutoMigrate(models...)
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}
