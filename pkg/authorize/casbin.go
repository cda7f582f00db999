package authorize

import (
	"errors"
	"fmt"

	casbin "github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidArgs = errors.New("invalid authorization arguments")
)

// modelText is the Casbin model for the capability check: a flat
// (role, resource, action) lookup with no domains and no role hierarchy.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// IAuthorization is the only thing services/middleware should depend on.
type IAuthorization interface {
	// Enforce answers: "May a user holding role perform action on resource?"
	Enforce(role Role, resource Resource, action Action) (bool, error)

	// Can is Enforce with argument errors collapsed into false. This is
	// the advisory capability check the presentation layer calls.
	Can(role Role, resource Resource, action Action) bool

	// MustEnforce returns ErrForbidden if not allowed.
	MustEnforce(role Role, resource Resource, action Action) error
}

// Authorization is a thin typed wrapper around casbin.Enforcer with the
// static clinic permission table loaded.
type Authorization struct {
	enforcer *casbin.Enforcer
}

// New builds an enforcer with the fixed permission table. The table is
// static: there is no policy storage and no runtime mutation.
func New() (IAuthorization, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("parse authorization model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	for _, p := range defaultPolicies() {
		if _, err := e.AddPolicy(string(p.Subject), string(p.Object), string(p.Action)); err != nil {
			return nil, fmt.Errorf("seed policy %v: %w", p, err)
		}
	}

	return &Authorization{enforcer: e}, nil
}

func (a *Authorization) Enforce(role Role, resource Resource, action Action) (bool, error) {
	if role == "" {
		return false, fmt.Errorf("%w: role is empty", ErrInvalidArgs)
	}
	if _, ok := KnownRoles[role]; !ok {
		return false, fmt.Errorf("%w: unknown role: %q", ErrInvalidArgs, role)
	}
	if _, ok := KnownResources[resource]; !ok {
		return false, fmt.Errorf("%w: unknown resource: %q", ErrInvalidArgs, resource)
	}
	if _, ok := KnownActions[action]; !ok {
		return false, fmt.Errorf("%w: unknown action: %q", ErrInvalidArgs, action)
	}

	allowed, err := a.enforcer.Enforce(string(role), string(resource), string(action))
	if err != nil {
		return false, err
	}
	return allowed, nil
}

func (a *Authorization) Can(role Role, resource Resource, action Action) bool {
	allowed, err := a.Enforce(role, resource, action)
	return err == nil && allowed
}

func (a *Authorization) MustEnforce(role Role, resource Resource, action Action) error {
	ok, err := a.Enforce(role, resource, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
