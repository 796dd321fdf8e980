package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Static policy: admin inherits hr, hr inherits employee. Management
// surfaces (request queue, status updates, announcements, attendance
// export) need hr or above.
var policies = [][]string{
	{"employee", "timeoff", "read"},
	{"employee", "timeoff", "write"},
	{"employee", "attendance", "read"},
	{"employee", "attendance", "write"},
	{"employee", "posts", "read"},
	{"employee", "posts", "write"},
	{"employee", "employees", "read"},
	{"employee", "announcements", "read"},
	{"employee", "holidays", "read"},
	{"employee", "hierarchy", "read"},

	{"hr", "manage", "read"},
	{"hr", "manage", "write"},
	{"hr", "announcements", "write"},
	{"hr", "holidays", "write"},
	{"hr", "employees", "write"},
}

var groupings = [][]string{
	{"hr", "employee"},
	{"admin", "hr"},
}

// NewEnforcer builds the in-memory casbin enforcer with the static role
// policy above. No storage adapter: roles live on the user record.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("rbac policy: %w", err)
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("rbac grouping: %w", err)
		}
	}

	return e, nil
}
