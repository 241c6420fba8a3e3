// Package navigation decides which screens are reachable for a session.
package navigation

import (
	"github.com/spec-kit/sojus-client/internal/authz"
	"github.com/spec-kit/sojus-client/internal/domain"
)

// Route names a screen.
type Route string

const (
	RouteSplash       Route = "splash"
	RouteLogin        Route = "login"
	RouteDashboard    Route = "dashboard"
	RouteTickets      Route = "tickets"
	RouteTicketDetail Route = "tickets/detail"
	RouteTicketCreate Route = "tickets/create"
	RouteInventory    Route = "inventory"
	RouteContracts    Route = "contracts"
)

var viewRoutes = map[authz.View]Route{
	authz.ViewDashboard: RouteDashboard,
	authz.ViewTickets:   RouteTickets,
	authz.ViewInventory: RouteInventory,
	authz.ViewContracts: RouteContracts,
}

// Entry is one item of the navigation drawer.
type Entry struct {
	Route Route
	View  authz.View
	Title string
}

// Navigator maps a session to its route table.
type Navigator struct{}

// New returns a Navigator.
func New() *Navigator {
	return &Navigator{}
}

// Routes lists every route the session may open. LOADING and UNINITIALIZED
// sessions only see the splash screen; ANONYMOUS only the login screen.
func (n *Navigator) Routes(s domain.Session) []Route {
	switch s.Status {
	case domain.SessionAuthenticated:
	case domain.SessionAnonymous:
		return []Route{RouteLogin}
	default:
		return []Route{RouteSplash}
	}

	role := s.Role()
	var routes []Route
	for _, v := range authz.ReachableViews(role) {
		routes = append(routes, viewRoutes[v])
		if v != authz.ViewTickets {
			continue
		}
		routes = append(routes, RouteTicketDetail)
		if authz.Allows(role, authz.ActionCreateTicket) {
			routes = append(routes, RouteTicketCreate)
		}
	}
	return routes
}

// Drawer returns the drawer entries for the session, in drawer order.
func (n *Navigator) Drawer(s domain.Session) []Entry {
	if !s.Authenticated() {
		return nil
	}
	role := s.Role()
	views := authz.ReachableViews(role)
	entries := make([]Entry, 0, len(views))
	for _, v := range views {
		entries = append(entries, Entry{Route: viewRoutes[v], View: v, Title: authz.Title(role, v)})
	}
	return entries
}

// Home is the first screen shown for the session. An authenticated user with
// no reachable view lands on the login screen.
func (n *Navigator) Home(s domain.Session) Route {
	routes := n.Routes(s)
	if len(routes) == 0 {
		return RouteLogin
	}
	return routes[0]
}

// CanOpen reports whether route is reachable for the session.
func (n *Navigator) CanOpen(s domain.Session, route Route) bool {
	for _, r := range n.Routes(s) {
		if r == route {
			return true
		}
	}
	return false
}

// Resolve returns requested when reachable and the session's home otherwise.
func (n *Navigator) Resolve(s domain.Session, requested Route) Route {
	if n.CanOpen(s, requested) {
		return requested
	}
	return n.Home(s)
}
