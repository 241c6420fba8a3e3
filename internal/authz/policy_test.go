package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/sojus-client/internal/domain"
)

func TestReachableViews(t *testing.T) {
	cases := []struct {
		role domain.Role
		want []View
	}{
		{domain.RoleAdmin, []View{ViewDashboard, ViewTickets, ViewInventory, ViewContracts}},
		{domain.RoleOperator, []View{ViewDashboard, ViewTickets, ViewContracts}},
		{domain.RoleTechnician, []View{ViewTickets, ViewInventory}},
		{"", []View{}},
		{"AUDITOR", []View{}},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.want, ReachableViews(tc.role))
			for _, v := range drawerOrder {
				assert.Equal(t, contains(tc.want, v), CanView(tc.role, v))
			}
		})
	}
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows(domain.RoleOperator, ActionCreateTicket))
	assert.False(t, Allows(domain.RoleTechnician, ActionCreateTicket))
	assert.True(t, Allows(domain.RoleTechnician, ActionChangeStatus))
	assert.False(t, Allows(domain.RoleOperator, ActionChangeStatus))
	assert.True(t, Allows(domain.RoleAdmin, ActionWriteContract))
	assert.False(t, Allows("", ActionCreateTicket))
	assert.False(t, Allows(domain.RoleAdmin, "ticket.delete"))
}

func TestRolesFor(t *testing.T) {
	assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleTechnician}, RolesFor(ActionWriteInventory))
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, RolesFor(ActionViewAudit))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Mis Tickets", Title(domain.RoleTechnician, ViewTickets))
	assert.Equal(t, "Mesa de Ayuda", Title(domain.RoleOperator, ViewTickets))
	assert.Equal(t, "Inventario", Title(domain.RoleAdmin, ViewInventory))
}

func contains(views []View, v View) bool {
	for _, candidate := range views {
		if candidate == v {
			return true
		}
	}
	return false
}
