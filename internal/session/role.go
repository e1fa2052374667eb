package session

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RolePatient      Role = "PATIENT"
	RoleDonor        Role = "DONOR"
	RoleDrugImporter Role = "DRUG_IMPORTER"
)

const (
	LoginPath = "/login"
	RootPath  = "/"
)

// dashboards is the fixed role to landing-section mapping.
var dashboards = map[Role]string{
	RoleAdmin:        "/admin",
	RolePatient:      "/patient",
	RoleDonor:        "/donor",
	RoleDrugImporter: "/importer",
}

// publicPaths may be visited without a session. The root path is not
// public: it always forwards to the login page or a role dashboard.
var publicPaths = map[string]struct{}{
	LoginPath:   {},
	"/register": {},
	"/about":    {},
}

// routeRule restricts a path prefix to a set of roles.
type routeRule struct {
	prefix  string
	allowed map[Role]struct{}
}

var protectedRoutes = []routeRule{
	{prefix: "/admin", allowed: roles(RoleAdmin)},
	{prefix: "/patient", allowed: roles(RolePatient)},
	{prefix: "/donor", allowed: roles(RoleDonor)},
	{prefix: "/importer", allowed: roles(RoleDrugImporter)},
}

func roles(rs ...Role) map[Role]struct{} {
	m := make(map[Role]struct{}, len(rs))
	for _, r := range rs {
		m[r] = struct{}{}
	}
	return m
}

// ParseRole maps the backend's role string onto a known Role.
func ParseRole(raw string) (Role, bool) {
	r := Role(raw)
	if _, ok := dashboards[r]; !ok {
		return "", false
	}
	return r, true
}

// DashboardPath returns the landing path for a role.
func DashboardPath(r Role) string {
	if p, ok := dashboards[r]; ok {
		return p
	}
	return LoginPath
}

// IsPublicPath reports whether the path may be visited anonymously.
func IsPublicPath(path string) bool {
	_, ok := publicPaths[path]
	return ok
}
