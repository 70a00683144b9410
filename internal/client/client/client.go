package client

import (
	"context"
	"time"
)

// Identity is the signed-in user as reported by the server.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Identity  `json:"user"`
}

// WorkOrder mirrors the server's work-order JSON.
type WorkOrder struct {
	Number           string     `json:"WO_NUMBER"`
	Project          string     `json:"PROJECT"`
	Type             string     `json:"WO_TYPE"`
	Status           string     `json:"WO_STATUS"`
	CreatedBy        string     `json:"CRE_BY"`
	CreatedAt        *time.Time `json:"CRE_DT"`
	DueDate          *time.Time `json:"WO_DUEDATE"`
	AssignedTo       string     `json:"ASSIGNED_TO"`
	Title            string     `json:"WO_TITLE"`
	SpecificLocation string     `json:"WO_SPECIFICLOCATION"`
	AdditionalNote   string     `json:"WO_ADDITIONAL_NOTE"`
}

// WorkOrderPage is one page of the listing.
type WorkOrderPage struct {
	Items       []WorkOrder `json:"items"`
	TotalCount  int64       `json:"totalCount"`
	TotalPages  int64       `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	PageSize    int         `json:"pageSize"`
}

// HistoryEntry mirrors the server's history JSON. Description may contain
// HTML.
type HistoryEntry struct {
	ID          int64  `json:"ID"`
	Number      string `json:"WO_NUMBER"`
	Description string `json:"DESCRIPTION"`
}

type Client interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, userName string, password []byte) (*Session, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*Identity, error)
	ListWorkOrders(ctx context.Context, page, pageSize int) (*WorkOrderPage, error)
	History(ctx context.Context, number string) ([]HistoryEntry, error)
	LoggedIn() bool
}
