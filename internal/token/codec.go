// Package token decodes bearer credentials issued by the identity service.
// Decoding is pure and signature-free: the gateway reads claims only for
// client-side routing convenience, and every upstream service re-validates
// the credential itself.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// RoleClaim is the namespaced claim key the identity service writes roles under.
const RoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// roleClaimKeys is the lookup order for the role; first defined value wins.
var roleClaimKeys = []string{RoleClaim, "role", "Role", "roles"}

// Claims is the decoded payload segment of a credential.
type Claims map[string]any

var errMalformed = errors.New("malformed token")

// Parse extracts the claims from a dot-separated credential without
// validating its signature.
func Parse(credential string) (Claims, error) {
	parts := strings.Split(credential, ".")
	if len(parts) < 2 {
		return nil, errMalformed
	}

	normalized := strings.ReplaceAll(parts[1], "-", "+")
	normalized = strings.ReplaceAll(normalized, "_", "/")
	if padding := (4 - len(normalized)%4) % 4; padding > 0 {
		normalized += strings.Repeat("=", padding)
	}

	payload, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, err
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Role returns the role claim embedded in the credential, or "" when no role
// can be derived. Malformed input degrades to "" and never panics.
func Role(credential string) string {
	claims, err := Parse(credential)
	if err != nil {
		return ""
	}
	return claims.Role()
}

// Role scans the prioritized claim keys and returns the first defined value.
// A first match that is not a string is not a usable role and yields "".
func (c Claims) Role() string {
	for _, key := range roleClaimKeys {
		value, ok := c[key]
		if !ok || value == nil {
			continue
		}
		if role, ok := value.(string); ok {
			return role
		}
		return ""
	}
	return ""
}
