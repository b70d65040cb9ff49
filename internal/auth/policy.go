package auth

import (
	"path"
	"strings"
)

type Decision int

const (
	Allow Decision = iota
	// RequireLogin means the caller is anonymous and must authenticate.
	RequireLogin
	// Deny means the caller is authenticated but lacks the role.
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RequireLogin:
		return "require_login"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

var DefaultPublicPaths = []string{
	"/login",
	"/register",
	"/logout",
	"/css/**",
	"/images/**",
	"/health",
	"/metrics",
}

const (
	adminPattern = "/admin/**"
	apiPattern   = "/api/**"
	tokenPath    = "/api/auth/token"
)

// AccessPolicy maps a request path and the caller's principal to a
// Decision. Patterns ending in "/**" match the prefix itself and
// everything below it; other patterns match exactly.
type AccessPolicy struct {
	public    []string
	apiPublic bool
}

func NewAccessPolicy(apiPublic bool, extraPublic ...string) *AccessPolicy {
	public := make([]string, 0, len(DefaultPublicPaths)+len(extraPublic)+1)
	public = append(public, DefaultPublicPaths...)
	public = append(public, tokenPath)
	public = append(public, extraPublic...)

	return &AccessPolicy{public: public, apiPublic: apiPublic}
}

func (ap *AccessPolicy) APIPublic() bool {
	return ap.apiPublic
}

// Decide evaluates public paths first, then /admin/**, then requires
// any authenticated principal. principal is nil for anonymous callers.
func (ap *AccessPolicy) Decide(requestPath string, principal *Principal) Decision {
	p := CleanPath(requestPath)

	for _, pattern := range ap.public {
		if Match(pattern, p) {
			return Allow
		}
	}

	if ap.apiPublic && Match(apiPattern, p) {
		return Allow
	}

	if Match(adminPattern, p) {
		if principal == nil {
			return RequireLogin
		}
		if !principal.HasRole(RoleAdmin) {
			return Deny
		}
		return Allow
	}

	if principal == nil {
		return RequireLogin
	}
	return Allow
}

func IsAPIPath(requestPath string) bool {
	return Match(apiPattern, CleanPath(requestPath))
}

func Match(pattern, p string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return p == prefix || strings.HasPrefix(p, prefix+"/")
	}
	return p == pattern
}

// CleanPath normalizes p so "//admin", "/admin/" and "/x/../admin"
// all compare equal to "/admin".
func CleanPath(p string) string {
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
