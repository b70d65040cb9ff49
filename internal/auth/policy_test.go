package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessPolicy_Decide(t *testing.T) {
	admin := NewPrincipal("admin@x.com", RoleAdmin)
	patient := NewPrincipal("p@x.com", RolePatient)
	other := NewPrincipal("d@x.com", "DOCTOR")

	policy := NewAccessPolicy(true)

	cases := []struct {
		name      string
		path      string
		principal *Principal
		want      Decision
	}{
		{"login anonymous", "/login", nil, Allow},
		{"register anonymous", "/register", nil, Allow},
		{"css anonymous", "/css/app.css", nil, Allow},
		{"images deep anonymous", "/images/a/b/c.png", nil, Allow},
		{"health anonymous", "/health", nil, Allow},
		{"login authenticated", "/login", &patient, Allow},

		{"admin root anonymous", "/admin", nil, RequireLogin},
		{"admin list anonymous", "/admin/appointments", nil, RequireLogin},
		{"admin deep anonymous", "/admin/appointments/1/notes", nil, RequireLogin},
		{"admin deeper anonymous", "/admin/a/b/c/d/e", nil, RequireLogin},
		{"admin patient", "/admin/appointments", &patient, Deny},
		{"admin deep patient", "/admin/appointments/1/delete", &patient, Deny},
		{"admin other role", "/admin/appointments", &other, Deny},
		{"admin admin", "/admin/appointments/1/delete", &admin, Allow},

		{"double slash admin patient", "//admin/appointments", &patient, Deny},
		{"trailing slash admin anonymous", "/admin/", nil, RequireLogin},
		{"dot dot admin patient", "/appointments/../admin/appointments", &patient, Deny},
		{"admin lookalike", "/administrator", &patient, Allow},
		{"login lookalike anonymous", "/login-help", nil, RequireLogin},

		{"appointments anonymous", "/appointments", nil, RequireLogin},
		{"appointments patient", "/appointments/add", &patient, Allow},
		{"welcome other", "/welcome", &other, Allow},
		{"root anonymous", "/", nil, RequireLogin},

		{"api public anonymous", "/api/appointments", nil, Allow},
		{"token anonymous", "/api/auth/token", nil, Allow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Decide(tc.path, tc.principal), tc.path)
		})
	}
}

func TestAccessPolicy_ProtectedAPI(t *testing.T) {
	policy := NewAccessPolicy(false)
	patient := NewPrincipal("p@x.com", RolePatient)

	assert.False(t, policy.APIPublic())
	assert.Equal(t, RequireLogin, policy.Decide("/api/appointments", nil))
	assert.Equal(t, Allow, policy.Decide("/api/appointments", &patient))
	assert.Equal(t, Allow, policy.Decide("/api/auth/token", nil))
}

func TestAccessPolicy_ExtraPublic(t *testing.T) {
	policy := NewAccessPolicy(false, "/status/**")
	assert.Equal(t, Allow, policy.Decide("/status/ready", nil))
}

func TestIsAPIPath(t *testing.T) {
	assert.True(t, IsAPIPath("/api"))
	assert.True(t, IsAPIPath("/api/appointments"))
	assert.False(t, IsAPIPath("/apis"))
	assert.False(t, IsAPIPath("/appointments"))
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "/", CleanPath(""))
	assert.Equal(t, "/admin", CleanPath("admin"))
	assert.Equal(t, "/admin", CleanPath("/admin/"))
	assert.Equal(t, "/admin/x", CleanPath("//admin//x"))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "require_login", RequireLogin.String())
	assert.Equal(t, "deny", Deny.String())
	assert.Equal(t, "unknown", Decision(42).String())
}
