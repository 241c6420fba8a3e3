package domain

// Role enumerates staff roles recognized by the backend.
type Role string

const (
	RoleAdmin      Role = "ADMINISTRADOR"
	RoleOperator   Role = "OPERADOR"
	RoleTechnician Role = "TECNICO"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleOperator, RoleTechnician}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleTechnician:
		return true
	}
	return false
}

// Label returns the display name shown in the drawer header.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleOperator:
		return "Operador"
	case RoleTechnician:
		return "Técnico"
	}
	return string(r)
}
