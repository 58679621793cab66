package session

import "strings"

// RouteClass buckets every navigable path of the portal frontend.
type RouteClass int

const (
	// RoutePublic pages are reachable without a session.
	RoutePublic RouteClass = iota
	// RouteCliente pages belong to the client portal.
	RouteCliente
	// RouteSistema pages belong to the back-office system.
	RouteSistema
)

// Route pattern constants for navigation decisions.
const (
	RutaLogin  = "/login"
	RutaPortal = "/portal"
	RutaInicio = "/"
)

// RouteTable classifies paths and decides redirects. The zero value is not
// usable; construct with DefaultRouteTable.
type RouteTable struct {
	public  []string
	cliente []string
	sistema []string
}

// DefaultRouteTable mirrors the navigable surface of the web client.
func DefaultRouteTable() *RouteTable {
	return &RouteTable{
		public:  []string{"/login", "/register", "/forgot-password"},
		cliente: []string{"/portal"},
		sistema: []string{"/", "/casos", "/clientes", "/equipo", "/documentos", "/calendario", "/settings"},
	}
}

// Classify returns the class of the given path. Unknown paths fall into the
// system bucket, which forces authentication for anything unlisted.
func (t *RouteTable) Classify(path string) RouteClass {
	if matchAny(t.public, path) {
		return RoutePublic
	}
	if matchAny(t.cliente, path) {
		return RouteCliente
	}
	return RouteSistema
}

// matchAny reports whether path equals a pattern or sits beneath it. The bare
// root "/" only matches exactly, otherwise it would swallow every path.
func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Reconcile computes the redirect target for the current navigation state.
// It returns "" when the path is already consistent with the session. No
// decision is made before the session restore has completed: redirecting on
// a half-restored state would bounce a logged-in user through /login.
func (t *RouteTable) Reconcile(restored bool, s *Session, path string) string {
	if !restored {
		return ""
	}

	class := t.Classify(path)

	if s == nil {
		if class == RoutePublic {
			return ""
		}
		return RutaLogin
	}

	if s.EsCliente() {
		// Clients never see the back office; public pages still render.
		if class == RouteSistema {
			return RutaPortal
		}
		return ""
	}

	// administrador / empleado: bounce off the client portal, and off the
	// login form itself (already authenticated). Other public pages render.
	if class == RouteCliente || path == RutaLogin {
		return RutaInicio
	}
	return ""
}
