package schema

// TicketTable represents the 'helpdesk.ticket' table
type TicketTable struct {
	Table        string
	ID           string
	OpenedAt     string
	ClosedAt     string
	Priority     string
	Status       string
	Title        string
	Notes        string
	TechnicianID string
	ClientID     string

	ForeignTechnician string
	ForeignClient     string
}

// Ticket is the schema definition for helpdesk.ticket
var Ticket = TicketTable{
	Table:        "helpdesk.ticket",
	ID:           "id",
	OpenedAt:     "openedat",
	ClosedAt:     "closedat",
	Priority:     "priority",
	Status:       "status",
	Title:        "title",
	Notes:        "notes",
	TechnicianID: "technicianid",
	ClientID:     "clientid",

	ForeignTechnician: "ticket_technicianid_fkey",
	ForeignClient:     "ticket_clientid_fkey",
}

// Columns returns all standard column names
func (t TicketTable) Columns() []string {
	return []string{
		t.ID, t.OpenedAt, t.ClosedAt, t.Priority, t.Status, t.Title, t.Notes, t.TechnicianID, t.ClientID,
	}
}
