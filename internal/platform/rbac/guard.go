// Package rbac decides role-based access using an in-process OPA Rego policy.
package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	"grameengo/backend/internal/user/domain"
)

// ErrUnauthenticated is returned when no identity was resolved for the request.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrForbidden is returned when the identity's role does not permit the operation.
var ErrForbidden = errors.New("access denied")

const policyPackage = "grameengo.authz"

// Authorization policy. Two decisions:
//   - allow: the caller's role is in the allowed set.
//   - owner_or_elevated: officers and admins always pass; borrowers pass only
//     for resources they own.
const authzRegoPolicy = `package grameengo.authz

default allow = false
default owner_or_elevated = false

allow if {
	input.identity.role in input.allowed_roles
}

owner_or_elevated if {
	input.identity.role == "officer"
}

owner_or_elevated if {
	input.identity.role == "admin"
}

owner_or_elevated if {
	input.owner_id != ""
	input.identity.id == input.owner_id
}
`

// Guard evaluates role and ownership checks against the compiled policy.
// It holds no mutable state and never queries storage; ownership comparisons
// use the owner id the caller already fetched.
type Guard struct {
	compiler *ast.Compiler
}

// NewGuard compiles the authorization policy and returns a Guard.
func NewGuard() (*Guard, error) {
	compiler, err := ast.CompileModules(map[string]string{"authz.rego": authzRegoPolicy})
	if err != nil {
		return nil, fmt.Errorf("compile authz policy: %w", err)
	}
	return &Guard{compiler: compiler}, nil
}

// Require checks that identity's role is one of allowed.
// Returns ErrUnauthenticated for a nil identity and ErrForbidden on role mismatch.
func (g *Guard) Require(ctx context.Context, identity *domain.User, allowed ...domain.Role) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	roles := make([]string, len(allowed))
	for i, r := range allowed {
		roles[i] = string(r)
	}
	input := map[string]interface{}{
		"identity":      identityInput(identity),
		"allowed_roles": roles,
	}
	ok, err := g.eval(ctx, "allow", input)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// RequireOwnerOrElevated checks that identity either owns the resource
// (identity.ID == ownerID) or holds an elevated role (officer or admin).
func (g *Guard) RequireOwnerOrElevated(ctx context.Context, identity *domain.User, ownerID string) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	input := map[string]interface{}{
		"identity": identityInput(identity),
		"owner_id": ownerID,
	}
	ok, err := g.eval(ctx, "owner_or_elevated", input)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// HealthCheck verifies that the compiled policy still evaluates. Used by the
// health endpoint for readiness. Returns nil on success.
func (g *Guard) HealthCheck(ctx context.Context) error {
	input := map[string]interface{}{
		"identity":      map[string]interface{}{"id": "", "role": "admin"},
		"allowed_roles": []string{"admin"},
	}
	ok, err := g.eval(ctx, "allow", input)
	if err != nil {
		return fmt.Errorf("eval authz policy: %w", err)
	}
	if !ok {
		return errors.New("authz policy returned unexpected decision")
	}
	return nil
}

func (g *Guard) eval(ctx context.Context, rule string, input map[string]interface{}) (bool, error) {
	q := rego.New(
		rego.Query(fmt.Sprintf("data.%s.%s", policyPackage, rule)),
		rego.Compiler(g.compiler),
		rego.Input(input),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return false, fmt.Errorf("eval authz policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, nil
	}
	decision, ok := rs[0].Expressions[0].Value.(bool)
	return ok && decision, nil
}

func identityInput(u *domain.User) map[string]interface{} {
	return map[string]interface{}{
		"id":   u.ID,
		"role": string(u.Role),
	}
}
