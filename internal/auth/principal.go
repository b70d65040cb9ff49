package auth

// Principal is an authenticated identity. It is rebuilt from the user
// record on every request and never stored.
type Principal struct {
	Identifier  string
	Authorities []string
}

func NewPrincipal(identifier, role string) Principal {
	return Principal{
		Identifier:  identifier,
		Authorities: []string{Authority(role)},
	}
}

// PrimaryAuthority is the first granted claim, or "" when there is none.
func (p Principal) PrimaryAuthority() string {
	if len(p.Authorities) == 0 {
		return ""
	}
	return p.Authorities[0]
}

// Role is the role behind the primary authority.
func (p Principal) Role() string {
	return RoleOf(p.PrimaryAuthority())
}

func (p Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

func (p Principal) HasRole(role string) bool {
	return p.HasAuthority(Authority(role))
}
