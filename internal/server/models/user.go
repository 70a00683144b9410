// Package models defines the server-side records read from the database and
// the identity carried by session tokens.
package models

// UserAccount is a row of the accounts table. Accounts are provisioned
// outside this service and are never written by it.
type UserAccount struct {
	ID          string
	UserName    string
	Password    string
	DisplayName string
	Email       string
}

// Identity is the minimal claim set derived from a UserAccount after a
// successful login and carried inside the session token.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsZero reports whether the identity carries no claims at all.
func (i Identity) IsZero() bool {
	return i.ID == "" && i.Name == "" && i.Email == ""
}

// ProjectMembership links an account (by user name / email) to a project.
type ProjectMembership struct {
	UserName string
	Project  string
}
