package api

import (
	"context"
	"net/http"
)

// ShippingAddress is the delivery destination for an order.
type ShippingAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// OrderRequest is the checkout payload.
type OrderRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// OrderConfirmation mirrors the backend's order-placed response.
type OrderConfirmation struct {
	ID     string  `json:"_id"`
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}

// PlaceOrder submits the current cart for checkout.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (OrderConfirmation, error) {
	var confirmation OrderConfirmation
	if err := c.send(ctx, http.MethodPost, "/orders", req, &confirmation); err != nil {
		return OrderConfirmation{}, err
	}
	return confirmation, nil
}
