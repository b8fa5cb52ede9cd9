// Package routes defines the dashboard's navigation targets, the static
// sidebar menu, and the guard deciding whether a target may render.
package routes

// Route is a navigation target inside the client.
type Route string

const (
	RouteLogin           Route = "login"
	RouteChat            Route = "chat"
	RouteAutomations     Route = "automations"
	RouteDashboard       Route = "dashboard"
	RouteVulnerabilities Route = "vulnerabilities"
	RouteAssets          Route = "assets"
	RouteReports         Route = "reports"
	RouteSummaries       Route = "summaries"
	RouteMonitoring      Route = "monitoring"
	RouteNotifications   Route = "notifications"
	RouteSettings        Route = "settings"
)

// MenuItem is one sidebar entry.
type MenuItem struct {
	Name  string
	Route Route
}

// MenuItems is the sidebar menu, in display order.
var MenuItems = []MenuItem{
	{Name: "IA", Route: RouteChat},
	{Name: "Automatizaciones", Route: RouteAutomations},
	{Name: "Dashboard", Route: RouteDashboard},
	{Name: "Vulnerabilidades", Route: RouteVulnerabilities},
	{Name: "Activos", Route: RouteAssets},
	{Name: "Reportes", Route: RouteReports},
	{Name: "Informes", Route: RouteSummaries},
	{Name: "Monitorizacion", Route: RouteMonitoring},
	{Name: "Notificaciones", Route: RouteNotifications},
	{Name: "Configuracion", Route: RouteSettings},
}

// SessionState is the slice of the session store the guard reads.
type SessionState interface {
	Authenticated() bool
}

// Guard decides whether a navigation target is rendered or redirected. It
// is a pure consumer of the session state; callers re-resolve whenever the
// session changes.
type Guard struct {
	sessions SessionState
}

// NewGuard builds a guard over the given session state.
func NewGuard(sessions SessionState) *Guard {
	return &Guard{sessions: sessions}
}

// Resolve maps a navigation target to the route that should render.
// Unauthenticated sessions land on the login page regardless of target;
// authenticated sessions asking for login land on the chat view.
func (g *Guard) Resolve(target Route) Route {
	if !g.sessions.Authenticated() {
		return RouteLogin
	}
	if target == RouteLogin {
		return RouteChat
	}
	return target
}
