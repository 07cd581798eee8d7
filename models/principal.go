package models

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleDelivery Role = "delivery"
)

// Principal is the authenticated caller attached to a request by the
// authentication middleware.
type Principal struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Role     Role   `json:"role"`
}
