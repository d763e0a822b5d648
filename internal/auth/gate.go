package auth

import "github.com/spec-kit/storefront-gateway/internal/session"

// GateState is the outcome of evaluating a session against a required role.
type GateState int

const (
	// GatePending means the session has not been hydrated yet; callers must
	// wait rather than redirect, or a startup race would bounce a logged-in
	// user to the login page.
	GatePending GateState = iota
	// GateDeniedNoSession means hydration finished and no credential exists.
	GateDeniedNoSession
	// GateDeniedWrongRole means a credential exists but its role does not
	// match the required one.
	GateDeniedWrongRole
	// GateAllowed means the protected resource may be served.
	GateAllowed
)

// GateDecision pairs a state with the redirect target for denial states.
type GateDecision struct {
	State      GateState
	RedirectTo string
}

// EvaluateGate is a pure function of the session snapshot; it holds no state
// of its own and is recomputed on every request.
func EvaluateGate(sess session.Session, requiredRole, loginPath, homePath string) GateDecision {
	if !sess.Initialized {
		return GateDecision{State: GatePending}
	}
	if !sess.Authenticated() {
		return GateDecision{State: GateDeniedNoSession, RedirectTo: loginPath}
	}
	if sess.Role != requiredRole {
		return GateDecision{State: GateDeniedWrongRole, RedirectTo: homePath}
	}
	return GateDecision{State: GateAllowed}
}
