// Package models defines the client-side shapes of backend resources.
package models

// Account is a data-forwarding account the signed-in user belongs to.
// UserRole is shown as-is; the client enforces nothing based on it.
type Account struct {
	ID          string `json:"id"`
	AccountName string `json:"account_name"`
	Website     string `json:"website"`
	UserRole    string `json:"user_role"`
}

// NewAccount is the body of an account creation request.
type NewAccount struct {
	AccountName string `json:"account_name"`
	Website     string `json:"website"`
}
