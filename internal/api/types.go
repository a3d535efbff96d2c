package api

// User roles recognized by the backend.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User mirrors the identity payload returned by auth and profile endpoints.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the user may access the admin panel.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Product mirrors a catalog entry.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

// ProductInput carries the writable product fields for admin create/update.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
}

// ProductRef is the read-only product snapshot embedded in cart lines. It is
// always backend-supplied, never recomputed locally.
type ProductRef struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
}

// LineItem is one product/quantity pairing within the cart.
type LineItem struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// ProductPage mirrors the paginated /products response.
type ProductPage struct {
	Products   []Product `json:"products"`
	TotalPages int       `json:"totalPages"`
}
