package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Identity is the authenticated caller as reported by the token verifier.
// Services trust these fields as given and never re-derive the role from
// request payloads.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

func (i Identity) IsCustomer() bool { return i.Role == RoleCustomer }
