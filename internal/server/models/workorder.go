package models

import "time"

// WorkOrder is one unit of service work. Visibility is derived from the
// project through ProjectMembership.
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

// WorkOrderHistoryEntry is a detail record attached to a work order.
//
// Description may contain HTML markup entered by back-office tools. It is
// returned verbatim; consumers rendering it must escape or sanitize it.
type WorkOrderHistoryEntry struct {
	ID          int64  `json:"ID"`
	Number      string `json:"WO_NUMBER"`
	Description string `json:"DESCRIPTION"`
}
