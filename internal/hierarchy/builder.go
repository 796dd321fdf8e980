package hierarchy

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
)

// Employee is the flat directory row the tree is built from.
type Employee struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Department         string `json:"department,omitempty"`
	Designation        string `json:"designation,omitempty"`
	ProfileImage       string `json:"profileImage,omitempty"`
	ReportingManagerID *uint  `json:"reportingManagerId,omitempty"`
}

// Node is one employee with their transitive reports.
type Node struct {
	Employee
	Subordinates []Node `json:"subordinates"`
}

var ErrManagerCycle = apperror.New(
	apperror.CodeConflict,
	"Reporting structure contains a cycle",
	http.StatusConflict,
)

// Build constructs the org tree from a flat employee list. If any employee
// has the admin role, the first one is the sole root (designation defaulted
// to "CMD"); otherwise every employee without a reporting manager is a
// root. Subordinate order follows input order. A manager cycle reachable
// from a root is reported as a data error rather than recursed into;
// employees unreachable from any root are omitted and logged.
func Build(employees []Employee) ([]Node, error) {
	var roots []Employee
	for _, e := range employees {
		if e.Role == "admin" {
			admin := e
			if admin.Designation == "" {
				admin.Designation = "CMD"
			}
			roots = []Employee{admin}
			break
		}
	}
	if roots == nil {
		for _, e := range employees {
			if e.ReportingManagerID == nil {
				roots = append(roots, e)
			}
		}
	}

	visited := make(map[uint]bool, len(employees))
	nodes := make([]Node, 0, len(roots))
	for _, root := range roots {
		node, err := descend(root, employees, visited)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	if len(visited) < len(employees) {
		zap.L().Named("hierarchy").Warn("employees unreachable from any root",
			zap.Int("total", len(employees)),
			zap.Int("reachable", len(visited)),
		)
	}

	return nodes, nil
}

func descend(e Employee, employees []Employee, visited map[uint]bool) (Node, error) {
	if visited[e.ID] {
		return Node{}, ErrManagerCycle
	}
	visited[e.ID] = true

	node := Node{Employee: e, Subordinates: []Node{}}
	for _, candidate := range employees {
		if candidate.ReportingManagerID != nil && *candidate.ReportingManagerID == e.ID {
			child, err := descend(candidate, employees, visited)
			if err != nil {
				return Node{}, err
			}
			node.Subordinates = append(node.Subordinates, child)
		}
	}
	return node, nil
}
