package model

type User struct {
	ID       string
	TenantID string
	FullName string
	Email    string
	Role     string
	Active   bool
}
