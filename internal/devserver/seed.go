package devserver

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Seed credentials for the sample customer account
const (
	SeedCustomerEmail = "customer@ajastra.dev"
	seedPassword      = "customer-password"
)

// Seed fills an empty database with a small sample catalog, one customer,
// a few orders and sliders. It does nothing when categories already exist.
func (s *Server) Seed() error {
	var count int64
	if err := s.db.Model(&Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Msg("Database already seeded")
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return seed(tx)
	})
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	s.logger.Info().Msg("Seeded sample data")
	return nil
}

func seed(tx *gorm.DB) error {
	shirts := &Category{Name: "Shirts", Description: "Casual and formal shirts", Image: "https://media.ajastra.dev/categories/shirts.jpg"}
	trousers := &Category{Name: "Trousers", Description: "Chinos and denim", Image: "https://media.ajastra.dev/categories/trousers.jpg"}
	if err := tx.Create([]*Category{shirts, trousers}).Error; err != nil {
		return err
	}

	oxford := &Product{
		Name: "Oxford Shirt", Description: "Cotton oxford button-down", Price: 1499,
		Images:     []string{"https://media.ajastra.dev/products/oxford.jpg"},
		CategoryID: shirts.ID, Sizes: []string{"S", "M", "L"}, Colors: []string{"white", "blue"},
		Material: "Cotton", Fit: "REGULAR", Brand: "Ajastra", InStock: true, Featured: true,
	}
	linen := &Product{
		Name: "Linen Shirt", Description: "Breathable summer linen", Price: 1899,
		CategoryID: shirts.ID, Sizes: []string{"M", "L"}, Colors: []string{"sand"},
		Material: "Linen", Fit: "SLIM", Brand: "Ajastra", InStock: false,
	}
	chinos := &Product{
		Name: "Slim Chinos", Description: "Stretch cotton chinos", Price: 1999,
		CategoryID: trousers.ID, Sizes: []string{"30", "32", "34"}, Colors: []string{"khaki", "navy"},
		Material: "Cotton", Fit: "SLIM", Brand: "Ajastra", InStock: true,
	}
	if err := tx.Create([]*Product{oxford, linen, chinos}).Error; err != nil {
		return err
	}

	hash, err := HashPassword(seedPassword)
	if err != nil {
		return err
	}
	home := PostalAddress{Street: "12 MG Road", City: "Bengaluru", State: "KA", PostalCode: "560001", Country: "IN"}
	customer := &User{
		Email: SeedCustomerEmail, PasswordHash: hash, FullName: "Sample Customer",
		Phone: "9000000000", Role: RoleUser,
	}
	if err := tx.Create(customer).Error; err != nil {
		return err
	}
	if err := tx.Create(&Address{UserID: customer.ID, PostalAddress: home}).Error; err != nil {
		return err
	}

	base := time.Now().Add(-72 * time.Hour).UTC()
	orders := []struct {
		status string
		items  []OrderItem
	}{
		{OrderDelivered, []OrderItem{{ProductID: oxford.ID, Quantity: 2, Size: "M", Color: "white", Price: oxford.Price}}},
		{OrderShipped, []OrderItem{{ProductID: chinos.ID, Quantity: 1, Size: "32", Color: "navy", Price: chinos.Price}}},
		{OrderPending, []OrderItem{
			{ProductID: linen.ID, Quantity: 1, Size: "L", Color: "sand", Price: linen.Price},
			{ProductID: oxford.ID, Quantity: 1, Size: "L", Color: "blue", Price: oxford.Price},
		}},
		{OrderCancelled, []OrderItem{{ProductID: chinos.ID, Quantity: 1, Size: "30", Color: "khaki", Price: chinos.Price}}},
	}
	for i, o := range orders {
		var subtotal float64
		for _, item := range o.items {
			subtotal += item.Price * float64(item.Quantity)
		}
		order := &Order{
			BaseModel:       BaseModel{CreatedAt: base.Add(time.Duration(i) * 12 * time.Hour)},
			UserID:          customer.ID,
			Subtotal:        subtotal,
			Tax:             subtotal * 0.05,
			Shipping:        99,
			Total:           subtotal*1.05 + 99,
			Status:          o.status,
			ShippingAddress: home,
			BillingAddress:  home,
			Items:           o.items,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
	}

	sliders := []*Slider{
		{Image: "https://media.ajastra.dev/sliders/summer.jpg", MediaType: "image"},
		{Image: "https://media.ajastra.dev/sliders/lookbook.mp4", MediaType: "video"},
	}
	return tx.Create(sliders).Error
}
