package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/sojus-client/internal/authz"
	"github.com/spec-kit/sojus-client/internal/domain"
)

func signedIn(role domain.Role) domain.Session {
	return domain.Session{
		Token:  "t",
		User:   &domain.User{Username: "u", Role: role},
		Status: domain.SessionAuthenticated,
	}
}

func TestRoutesByStatus(t *testing.T) {
	n := New()

	assert.Equal(t, []Route{RouteSplash}, n.Routes(domain.Session{Status: domain.SessionUninitialized}))
	assert.Equal(t, []Route{RouteSplash}, n.Routes(domain.Session{Status: domain.SessionLoading}))
	assert.Equal(t, []Route{RouteLogin}, n.Routes(domain.Session{Status: domain.SessionAnonymous}))
}

func TestRoutesByRole(t *testing.T) {
	n := New()
	cases := map[domain.Role][]Route{
		domain.RoleAdmin:      {RouteDashboard, RouteTickets, RouteTicketDetail, RouteTicketCreate, RouteInventory, RouteContracts},
		domain.RoleOperator:   {RouteDashboard, RouteTickets, RouteTicketDetail, RouteTicketCreate, RouteContracts},
		domain.RoleTechnician: {RouteTickets, RouteTicketDetail, RouteInventory},
	}
	for role, want := range cases {
		assert.Equal(t, want, n.Routes(signedIn(role)), role)
	}
	assert.Empty(t, n.Routes(signedIn("AUDITOR")))
}

func TestHomeAndResolve(t *testing.T) {
	n := New()

	assert.Equal(t, RouteDashboard, n.Home(signedIn(domain.RoleOperator)))
	assert.Equal(t, RouteTickets, n.Home(signedIn(domain.RoleTechnician)))
	assert.Equal(t, RouteLogin, n.Home(signedIn("AUDITOR")))

	assert.Equal(t, RouteTickets, n.Resolve(signedIn(domain.RoleTechnician), RouteContracts))
	assert.Equal(t, RouteInventory, n.Resolve(signedIn(domain.RoleTechnician), RouteInventory))
	assert.Equal(t, RouteLogin, n.Resolve(domain.Session{Status: domain.SessionAnonymous}, RouteDashboard))
	assert.False(t, n.CanOpen(signedIn(domain.RoleTechnician), RouteTicketCreate))
}

func TestDrawerTitles(t *testing.T) {
	n := New()

	drawer := n.Drawer(signedIn(domain.RoleTechnician))
	assert.Equal(t, []Entry{
		{Route: RouteTickets, View: authz.ViewTickets, Title: "Mis Tickets"},
		{Route: RouteInventory, View: authz.ViewInventory, Title: "Inventario"},
	}, drawer)

	assert.Nil(t, n.Drawer(domain.Session{Status: domain.SessionAnonymous}))
}
