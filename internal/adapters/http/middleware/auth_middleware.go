package middleware

import (
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/core/services"
	"gensuite-api/internal/pkg/response"
	"gensuite-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the gate on successful resolution
const (
	LocalClaims  = "claims"
	LocalSubject = "subject"
	LocalRole    = "role"
	LocalAccount = "account"
)

// AccessTokenCookie is the cookie transport for session tokens
const AccessTokenCookie = "access_token"

// GateOptions parameterizes the access gate per protected surface
type GateOptions struct {
	// Roles allowed through; empty permits any authenticated role
	Roles []string
	// Recheck loads the live account record and evaluates its lifecycle
	// state on every request
	Recheck bool
}

// Gate returns the access gate middleware wrapping protected routes. One
// parameterized gate serves every surface; both back-offices instantiate it
// with the admin scope so their checks cannot drift apart.
//
// Stateless and reentrant: each invocation resolves from scratch.
func Gate(sessions *services.SessionService, security *services.SecurityService, opts GateOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var res *services.Resolution

		// 1. Cookie transport first, then Authorization header
		if cookie := c.Cookies(AccessTokenCookie); cookie != "" {
			res = sessions.ResolveToken(c.Context(), cookie, opts.Recheck)
		} else {
			res = sessions.ResolveBearer(c.Context(), c.Get(fiber.HeaderAuthorization), opts.Recheck)
		}

		// 2. Denied: short-circuit with the standard response
		if !res.Authorized {
			if res.Reason.IsTokenFailure() {
				// Invalid signatures are notable; absent or merely expired
				// tokens are routine.
				if security != nil && res.Reason == domain.DenyInvalidToken {
					security.LogSecurityEvent("auth.token_rejected", string(res.Reason)+" on "+c.Path(), c.IP())
				}
				return response.Unauthorized(c, res.Reason.Message())
			}
			return response.AccountState(c, fiber.StatusForbidden, string(res.Reason), res.Reason.Message())
		}

		// 3. Role scope check
		if len(opts.Roles) > 0 && !roleAllowed(res.Claims.Role, opts.Roles) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		// 4. Expose identity to downstream handlers
		c.Locals(LocalClaims, res.Claims)
		c.Locals(LocalSubject, res.Claims.Subject)
		c.Locals(LocalRole, res.Claims.Role)
		if res.Account != nil {
			c.Locals(LocalAccount, res.Account)
		}

		return c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// UserGate allows authenticated end users (and admins) with a live account
// re-check on every request
func UserGate(sessions *services.SessionService, security *services.SecurityService) fiber.Handler {
	return Gate(sessions, security, GateOptions{
		Roles:   []string{token.RoleUser, token.RoleAdmin},
		Recheck: true,
	})
}

// AdminGate allows only admin tokens. Back-office identities live in
// configuration, not the credential store, so there is no re-check.
func AdminGate(sessions *services.SessionService, security *services.SecurityService) fiber.Handler {
	return Gate(sessions, security, GateOptions{
		Roles: []string{token.RoleAdmin},
	})
}
