package api

import (
	"context"
	"net/http"
)

// UpdateOrderStatusRequest represents the order status change body
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ListOrders returns all orders
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if _, err := c.doJSON(ctx, http.MethodGet, pathAllOrders, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to status. The value is passed through unchecked.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*Order, error) {
	var order Order
	_, err := c.doJSON(ctx, http.MethodPut, pathUpdateOrderStatus(orderID), UpdateOrderStatusRequest{Status: status}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
