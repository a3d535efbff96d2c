package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// FetchCart retrieves the server-side cart for the current user.
func (c *Client) FetchCart(ctx context.Context) ([]LineItem, error) {
	var payload struct {
		Items []LineItem `json:"items"`
	}
	if err := c.get(ctx, "/orders/cart", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// AddCartItem creates or merges a cart line. The backend merges repeated adds
// for the same product id into one line.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int, price float64) error {
	if strings.TrimSpace(productID) == "" {
		return fmt.Errorf("product id required")
	}
	body := struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		Price     float64 `json:"price"`
	}{ProductID: productID, Quantity: quantity, Price: price}
	return c.send(ctx, http.MethodPost, "/orders/cart/items", body, nil)
}

// UpdateCartItem replaces the quantity of an existing cart line.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int, price float64) error {
	if strings.TrimSpace(productID) == "" {
		return fmt.Errorf("product id required")
	}
	body := struct {
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}{Quantity: quantity, Price: price}
	return c.send(ctx, http.MethodPut, "/orders/cart/items/"+productID, body, nil)
}

// RemoveCartItem deletes one cart line.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return fmt.Errorf("product id required")
	}
	return c.send(ctx, http.MethodDelete, "/orders/cart/items/"+productID, nil, nil)
}

// ClearCart deletes the entire cart resource.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.send(ctx, http.MethodDelete, "/orders/cart", nil, nil)
}
