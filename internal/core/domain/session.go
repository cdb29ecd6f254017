package domain

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RolePatient Role = "PATIENT"
)

// Session replaces the browser client's three local-storage keys with a
// single record, looked up by an opaque id handed out at login.
type Session struct {
	ID        string `json:"sessionId"`
	Token     string `json:"-"`
	Role      Role   `json:"role"`
	PatientID int64  `json:"patientId,omitempty"`
}

// LandingRoute is where a role-gated route redirects a caller whose role
// does not match: each role has its own dashboard, anything else goes home.
func (r Role) LandingRoute() string {
	switch r {
	case RolePatient:
		return "/patient-dashboard"
	case RoleAdmin:
		return "/dashboard"
	default:
		return "/"
	}
}
