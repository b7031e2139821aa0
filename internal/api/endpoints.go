package api

import (
	"fmt"
	"net/url"
)

// Admin API paths, relative to the base URL
const (
	pathAdminRegister = "/api/auth/admin/register"
	pathAdminLogout   = "/api/auth/admin/logout"
	pathAllUsers      = "/api/auth/admin/all"
	pathCategory      = "/api/category"
	pathCategories    = "/api/category/"
	pathAllProducts   = "/api/product/admin/see"
	pathAllOrders     = "/api/order/admin/all"
	pathAddSlider     = "/api/slider/add"
	pathSliders       = "/api/slider/see"
)

func pathAddAddress(userID string) string {
	return fmt.Sprintf("/api/address/%s", url.PathEscape(userID))
}

func pathProduct(productID string) string {
	return fmt.Sprintf("/api/product/%s", url.PathEscape(productID))
}

func pathAddProduct(categoryID string) string {
	return fmt.Sprintf("/api/product/%s/create", url.PathEscape(categoryID))
}

func pathDeleteProduct(productID, categoryID string) string {
	return fmt.Sprintf("/api/product/%s/%s", url.PathEscape(productID), url.PathEscape(categoryID))
}

func pathUpdateStock(productID string) string {
	return fmt.Sprintf("/api/product/%s/updateStock", url.PathEscape(productID))
}

func pathUpdateFeatured(productID string) string {
	return fmt.Sprintf("/api/product/%s/updateFeatured", url.PathEscape(productID))
}

func pathUpdateOrderStatus(orderID string) string {
	return fmt.Sprintf("/api/order/admin/%s", url.PathEscape(orderID))
}

func pathDeleteSlider(sliderID string) string {
	return fmt.Sprintf("/api/slider/%s/delete", url.PathEscape(sliderID))
}
