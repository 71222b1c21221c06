package models

import "time"

// Category is the identity partition a record or session belongs to.
// Usernames are unique within a category, not across categories, so
// category + id together form the global identity key.
type Category string

const (
	CategoryConsumer Category = "consumer"
	CategoryRetailer Category = "retailer"
	CategoryAdmin    Category = "admin"
)

// Consumer is a row in the consumer table.
type Consumer struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	FirstName    string
	MiddleName   string
	LastName     string
	Gender       string
	Birthdate    time.Time
	Age          int
	LocationID   int64
	CreatedAt    time.Time
}

// Retailer is a row in the retailer table.
type Retailer struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	FirstName    string
	MiddleName   string
	LastName     string
	LocationID   int64
	CreatedAt    time.Time
}

// Admin is a row in the admin table. Admins carry a subtype instead of
// email, location, or birth fields.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	MiddleName   string
	LastName     string
	AdminType    string
	CreatedAt    time.Time
}

// Identity is the normalized view produced by session resolution. The
// three storage variants never share a table; this is the one shape
// callers see. Category-specific fields are pointers and stay nil
// outside their owning category.
type Identity struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	MiddleName string     `json:"middle_name"`
	LastName   string     `json:"last_name"`
	Role       string     `json:"role"`
	Category   Category   `json:"category"`
	CreatedAt  time.Time  `json:"created_at"`
	Gender     *string    `json:"gender,omitempty"`
	Birthdate  *time.Time `json:"birthdate,omitempty"`
	Age        *int       `json:"age,omitempty"`
	LocationID *int64     `json:"location_id,omitempty"`
}

// Normalized maps a consumer row into the unified identity view. The
// password hash never crosses into an Identity.
func (c Consumer) Normalized() Identity {
	gender := c.Gender
	birthdate := c.Birthdate
	age := c.Age
	locationID := c.LocationID
	return Identity{
		ID:         c.ID,
		Username:   c.Username,
		Email:      c.Email,
		FirstName:  c.FirstName,
		MiddleName: c.MiddleName,
		LastName:   c.LastName,
		Role:       string(CategoryConsumer),
		Category:   CategoryConsumer,
		CreatedAt:  c.CreatedAt,
		Gender:     &gender,
		Birthdate:  &birthdate,
		Age:        &age,
		LocationID: &locationID,
	}
}

// Normalized maps a retailer row into the unified identity view.
func (r Retailer) Normalized() Identity {
	locationID := r.LocationID
	return Identity{
		ID:         r.ID,
		Username:   r.Username,
		Email:      r.Email,
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		LastName:   r.LastName,
		Role:       string(CategoryRetailer),
		Category:   CategoryRetailer,
		CreatedAt:  r.CreatedAt,
		LocationID: &locationID,
	}
}

// Normalized maps an admin row into the unified identity view. The
// role carries the admin subtype; email stays empty.
func (a Admin) Normalized() Identity {
	role := a.AdminType
	if role == "" {
		role = string(CategoryAdmin)
	}
	return Identity{
		ID:         a.ID,
		Username:   a.Username,
		FirstName:  a.FirstName,
		MiddleName: a.MiddleName,
		LastName:   a.LastName,
		Role:       role,
		Category:   CategoryAdmin,
		CreatedAt:  a.CreatedAt,
	}
}
