package schema

// PersonTable represents the 'helpdesk.person' table.
//
// Clients and technicians share this table; Kind tells them apart.
type PersonTable struct {
	Table        string
	ID           string
	Kind         string
	Name         string
	CPF          string
	Email        string
	PasswordHash string
	Roles        string
	CreatedAt    string

	// Constraint names, used to map unique violations to client messages.
	UniqueCPF   string
	UniqueEmail string
}

// Person is the schema definition for helpdesk.person
var Person = PersonTable{
	Table:        "helpdesk.person",
	ID:           "id",
	Kind:         "kind",
	Name:         "name",
	CPF:          "cpf",
	Email:        "email",
	PasswordHash: "passwordhash",
	Roles:        "roles",
	CreatedAt:    "createdat",

	UniqueCPF:   "person_cpf_key",
	UniqueEmail: "person_email_key",
}

// Columns returns all standard column names
func (t PersonTable) Columns() []string {
	return []string{
		t.ID, t.Kind, t.Name, t.CPF, t.Email, t.PasswordHash, t.Roles, t.CreatedAt,
	}
}
