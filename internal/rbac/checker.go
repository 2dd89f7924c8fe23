package rbac

import (
	"context"
	"strings"
)

// Checker answers whether a role carries a permission. Permissions are
// "resource:action" strings; a grant may end in "*" to cover a whole
// resource, and the bare "*" grant covers everything.
type Checker struct {
	RolePermissions map[string][]string
}

func NewChecker(rp map[string][]string) *Checker {
	if rp == nil {
		rp = RolePermissions
	}
	return &Checker{RolePermissions: rp}
}

func (c *Checker) Has(role, perm string) bool {
	for _, grant := range c.RolePermissions[role] {
		if grantCovers(grant, perm) {
			return true
		}
	}
	return false
}

// Any reports whether the role carries at least one of perms.
func (c *Checker) Any(role string, perms ...string) bool {
	for _, p := range perms {
		if c.Has(role, p) {
			return true
		}
	}
	return false
}

func grantCovers(grant, perm string) bool {
	switch {
	case grant == "*":
		return true
	case grant == perm:
		return true
	case strings.HasSuffix(grant, "*"):
		return strings.HasPrefix(perm, grant[:len(grant)-1])
	}
	return false
}

// ---- subject/role in context ----

type ctxKey int

const (
	ctxKeySub ctxKey = iota
	ctxKeyRole
)

// WithSubject stores the authenticated user id; the JWT middleware calls
// this after validating the token.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

func SubjectFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeySub).(string); ok {
		return s
	}
	return ""
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeyRole).(string); ok {
		return s
	}
	return ""
}
