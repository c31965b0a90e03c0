package routegate

import (
	"strings"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/session"
)

// Outcome of resolving a navigation request.
type Outcome int

const (
	Render Outcome = iota
	RedirectLogin
	RedirectFallback
)

const (
	LoginPath    = "/login"
	FallbackPath = "/dashboard"
)

// Decision carries the outcome plus the redirect target, if any.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Entry guards one destination prefix. An empty AllowedRoles set with
// RequireAuth means "any authenticated role".
type Entry struct {
	Prefix       string
	RequireAuth  bool
	AllowedRoles []models.Role
}

// Table is the static route-guard configuration, built once at startup
// and immutable thereafter.
type Table struct {
	entries []Entry
}

func NewTable(entries []Entry) *Table {
	return &Table{entries: entries}
}

// Default mirrors the application's route tree.
func Default() *Table {
	return NewTable([]Entry{
		{Prefix: "/api/me", RequireAuth: true},
		{Prefix: "/api/appointments", RequireAuth: true, AllowedRoles: []models.Role{models.RolePatient, models.RoleDoctor}},
		{Prefix: "/api/records", RequireAuth: true, AllowedRoles: []models.Role{models.RolePatient}},
	})
}

func (t *Table) lookup(dest string) *Entry {
	for i := range t.entries {
		if strings.HasPrefix(dest, t.entries[i].Prefix) {
			return &t.entries[i]
		}
	}
	return nil
}

// Resolve decides whether the requester may reach the destination. It is
// a pure function of (destination, session) with no side effects.
func (t *Table) Resolve(dest string, sess *session.Session) Decision {
	entry := t.lookup(dest)
	if entry == nil || !entry.RequireAuth {
		return Decision{Outcome: Render}
	}

	if sess == nil {
		return Decision{Outcome: RedirectLogin, Target: LoginPath}
	}

	if len(entry.AllowedRoles) > 0 && !roleAllowed(sess.Role, entry.AllowedRoles) {
		return Decision{Outcome: RedirectFallback, Target: FallbackPath}
	}

	return Decision{Outcome: Render}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// DashboardVariant is the role-polymorphic landing view.
type DashboardVariant string

const (
	DoctorDashboard  DashboardVariant = "doctor"
	PatientDashboard DashboardVariant = "patient"
)

// DashboardFor dispatches the landing destination over the role variant.
// This is a closed two-way dispatch: a third role means a third case here.
func DashboardFor(role models.Role) DashboardVariant {
	switch role {
	case models.RoleDoctor:
		return DoctorDashboard
	case models.RolePatient:
		return PatientDashboard
	default:
		return PatientDashboard
	}
}
