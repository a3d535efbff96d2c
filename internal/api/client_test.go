package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("shop.example.com:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "shop.example.com:8080" {
		t.Fatalf("url = %q, want http://shop.example.com:8080", u.String())
	}

	u, err = parseBaseURL("https://shop.example.com/base?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_AttachesHeadersAndToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotRequestID, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Username: "ada", Role: RoleCustomer})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	// No token set: no Authorization header.
	if _, err := c.Profile(ctx); err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty without token", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("X-Request-ID header missing")
	}
	if !strings.HasPrefix(gotUserAgent, "vitrine/") {
		t.Fatalf("User-Agent = %q, want vitrine/*", gotUserAgent)
	}

	c.SetToken("tok-123")
	user, err := c.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if user.ID != "u1" || user.Username != "ada" {
		t.Fatalf("Profile user = %#v, want u1/ada", user)
	}
}

func TestClient_ListProductsEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ProductPage{
			Products:   []Product{{ID: "p1", Name: "Lamp", Price: 19.99}},
			TotalPages: 3,
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	page, err := c.ListProducts(context.Background(), ListQuery{
		Page:      2,
		SortBy:    "price",
		SortOrder: "desc",
		Category:  "lighting",
		Search:    "lamp",
	})
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if gotQuery.Get("page") != "2" ||
		gotQuery.Get("sortBy") != "price" ||
		gotQuery.Get("sortOrder") != "desc" ||
		gotQuery.Get("category") != "lighting" ||
		gotQuery.Get("search") != "lamp" {
		t.Fatalf("ListProducts query = %v, want params encoded", gotQuery)
	}
	if len(page.Products) != 1 || page.Products[0].ID != "p1" || page.TotalPages != 3 {
		t.Fatalf("ListProducts page = %#v, want 1 product, 3 pages", page)
	}

	// Zero-value query carries no parameters.
	_, err = c.ListProducts(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(gotQuery) != 0 {
		t.Fatalf("ListProducts query = %v, want empty", gotQuery)
	}
}

func TestClient_CartEndpointsAndBodies(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var calls []call

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := call{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				entry.body = body
			}
		}
		calls = append(calls, entry)

		if r.Method == http.MethodGet && r.URL.Path == "/orders/cart" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items":[{"product":{"_id":"p1","name":"Lamp","price":19.99},"quantity":2}]}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	items, err := c.FetchCart(ctx)
	if err != nil {
		t.Fatalf("FetchCart returned error: %v", err)
	}
	if len(items) != 1 || items[0].Product.ID != "p1" || items[0].Quantity != 2 {
		t.Fatalf("FetchCart items = %#v, want p1 qty 2", items)
	}

	if err := c.AddCartItem(ctx, "p1", 2, 19.99); err != nil {
		t.Fatalf("AddCartItem returned error: %v", err)
	}
	if err := c.UpdateCartItem(ctx, "p1", 3, 19.99); err != nil {
		t.Fatalf("UpdateCartItem returned error: %v", err)
	}
	if err := c.RemoveCartItem(ctx, "p1"); err != nil {
		t.Fatalf("RemoveCartItem returned error: %v", err)
	}
	if err := c.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart returned error: %v", err)
	}

	want := []struct {
		method, path string
	}{
		{http.MethodGet, "/orders/cart"},
		{http.MethodPost, "/orders/cart/items"},
		{http.MethodPut, "/orders/cart/items/p1"},
		{http.MethodDelete, "/orders/cart/items/p1"},
		{http.MethodDelete, "/orders/cart"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %d, want %d", len(calls), len(want))
	}
	for i, w := range want {
		if calls[i].method != w.method || calls[i].path != w.path {
			t.Fatalf("call %d = %s %s, want %s %s", i, calls[i].method, calls[i].path, w.method, w.path)
		}
	}

	add := calls[1].body
	if add["productId"] != "p1" || add["quantity"] != float64(2) || add["price"] != 19.99 {
		t.Fatalf("AddCartItem body = %v, want productId/quantity/price", add)
	}
	update := calls[2].body
	if update["quantity"] != float64(3) || update["price"] != 19.99 {
		t.Fatalf("UpdateCartItem body = %v, want quantity 3 price 19.99", update)
	}
	if _, ok := update["productId"]; ok {
		t.Fatalf("UpdateCartItem body = %v, product id belongs in the path", update)
	}
}

func TestClient_ErrorCarriesBackendMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
		case "/users/profile":
			// No JSON body: the generic message applies.
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Login(context.Background(), "a@b.c", "nope")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("Login error = %v, want backend message", err)
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("IsStatus(401) = false for %v", err)
	}
	if got := ErrorMessage(err, "fallback"); got != "Invalid credentials" {
		t.Fatalf("ErrorMessage = %q, want backend message", got)
	}

	_, err = c.Profile(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Profile error = %v, want generic status message", err)
	}
	if got := ErrorMessage(err, "fallback"); got != "fallback" {
		t.Fatalf("ErrorMessage = %q, want fallback", got)
	}
}

func TestClient_PlaceOrderBody(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"o1","status":"pending","total":39.98}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	confirmation, err := c.PlaceOrder(context.Background(), OrderRequest{
		ShippingAddress: ShippingAddress{Street: "1 Main St", City: "Springfield", State: "OR", Zip: "97477"},
		PaymentMethod:   "credit_card",
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if confirmation.ID != "o1" || confirmation.Total != 39.98 {
		t.Fatalf("PlaceOrder confirmation = %#v, want o1 total 39.98", confirmation)
	}

	addr, ok := gotBody["shippingAddress"].(map[string]any)
	if !ok || addr["street"] != "1 Main St" || addr["zip"] != "97477" {
		t.Fatalf("PlaceOrder body = %v, want nested shippingAddress", gotBody)
	}
	if gotBody["paymentMethod"] != "credit_card" {
		t.Fatalf("PlaceOrder body = %v, want paymentMethod", gotBody)
	}
}
