package api

// Product is a catalog product as returned by the server. The client only
// ever holds cached, possibly stale copies; the server owns the record.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    Category `json:"category"`
	CreationAt  string   `json:"creationAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// Category is read-only reference data, fetched once per session.
type Category struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	CreationAt string `json:"creationAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	CategoryID  int      `json:"categoryId"`
	Images      []string `json:"images"`
}

// UpdateProductRequest carries partial fields; nil fields are left untouched.
type UpdateProductRequest struct {
	Title       *string  `json:"title,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	CategoryID  *int     `json:"categoryId,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// TokenPair is the access/refresh token pair returned by login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// User is the profile of the logged-in user.
type User struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}
