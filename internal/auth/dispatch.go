package auth

const (
	AdminLandingPath   = "/admin/appointments"
	PatientLandingPath = "/appointments/add"
	DefaultLandingPath = "/welcome"
)

// RedirectRule sends principals holding Authority to Target.
type RedirectRule struct {
	Authority string
	Target    string
}

// Dispatcher decides where a freshly authenticated principal lands.
// Rules are checked in order against the principal's first authority
// only, so a principal carrying several roles is routed by whichever
// claim comes first.
type Dispatcher struct {
	rules    []RedirectRule
	fallback string
}

func NewDispatcher(fallback string, rules ...RedirectRule) *Dispatcher {
	return &Dispatcher{rules: rules, fallback: fallback}
}

func DefaultDispatcher() *Dispatcher {
	return NewDispatcher(
		DefaultLandingPath,
		RedirectRule{Authority: Authority(RoleAdmin), Target: AdminLandingPath},
		RedirectRule{Authority: Authority(RolePatient), Target: PatientLandingPath},
	)
}

func (d *Dispatcher) Target(p Principal) string {
	first := p.PrimaryAuthority()
	for _, r := range d.rules {
		if r.Authority == first {
			return r.Target
		}
	}
	return d.fallback
}
