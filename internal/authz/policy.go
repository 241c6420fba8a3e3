// Package authz is the single source of truth for what each role may see and do.
package authz

import "github.com/spec-kit/sojus-client/internal/domain"

// View identifies a top-level screen of the drawer.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewTickets   View = "tickets"
	ViewInventory View = "inventory"
	ViewContracts View = "contracts"
)

// drawerOrder is the order views appear in the navigation drawer.
var drawerOrder = []View{ViewDashboard, ViewTickets, ViewInventory, ViewContracts}

// Action identifies a mutation gated by role.
type Action string

const (
	ActionCreateTicket   Action = "ticket.create"
	ActionChangeStatus   Action = "ticket.change_status"
	ActionWriteInventory Action = "inventory.write"
	ActionWriteContract  Action = "contract.write"
	ActionViewAudit      Action = "audit.read"
	ActionViewUsers      Action = "users.read"
)

type roleSet map[domain.Role]struct{}

func roles(rs ...domain.Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

var viewRoles = map[View]roleSet{
	ViewDashboard: roles(domain.RoleAdmin, domain.RoleOperator),
	ViewTickets:   roles(domain.RoleAdmin, domain.RoleOperator, domain.RoleTechnician),
	ViewInventory: roles(domain.RoleAdmin, domain.RoleTechnician),
	ViewContracts: roles(domain.RoleAdmin, domain.RoleOperator),
}

var actionRoles = map[Action]roleSet{
	ActionCreateTicket:   roles(domain.RoleAdmin, domain.RoleOperator),
	ActionChangeStatus:   roles(domain.RoleAdmin, domain.RoleTechnician),
	ActionWriteInventory: roles(domain.RoleAdmin, domain.RoleTechnician),
	ActionWriteContract:  roles(domain.RoleAdmin),
	ActionViewAudit:      roles(domain.RoleAdmin),
	ActionViewUsers:      roles(domain.RoleAdmin),
}

// ReachableViews returns the views role may open, in drawer order.
// Unknown or empty roles get no views.
func ReachableViews(role domain.Role) []View {
	views := make([]View, 0, len(drawerOrder))
	for _, v := range drawerOrder {
		if _, ok := viewRoles[v][role]; ok {
			views = append(views, v)
		}
	}
	return views
}

// CanView reports whether role may open v.
func CanView(role domain.Role, v View) bool {
	_, ok := viewRoles[v][role]
	return ok
}

// Allows reports whether role may perform action.
func Allows(role domain.Role, action Action) bool {
	_, ok := actionRoles[action][role]
	return ok
}

// RolesFor lists the roles permitted to perform action, in declaration order.
func RolesFor(action Action) []domain.Role {
	out := make([]domain.Role, 0, len(domain.Roles))
	for _, r := range domain.Roles {
		if Allows(r, action) {
			out = append(out, r)
		}
	}
	return out
}

// Title returns the heading of v for role.
func Title(role domain.Role, v View) string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewTickets:
		if role == domain.RoleTechnician {
			return "Mis Tickets"
		}
		return "Mesa de Ayuda"
	case ViewInventory:
		return "Inventario"
	case ViewContracts:
		return "Contratos"
	}
	return string(v)
}
