package employee

import (
	"context"

	"github.com/deke-r/senseHrm/internal/hierarchy"
	"github.com/deke-r/senseHrm/internal/timeoff"
)

// Directory adapts the employee repository to the narrow read interfaces
// the time-off service and the hierarchy builder depend on.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) GetBasic(ctx context.Context, id uint) (*timeoff.DirectoryUser, error) {
	user, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &timeoff.DirectoryUser{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (d *Directory) GetBasicBatch(ctx context.Context, ids []uint) (map[uint]timeoff.DirectoryUser, error) {
	users, err := d.repo.GetBasicBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]timeoff.DirectoryUser, len(users))
	for _, u := range users {
		out[u.ID] = timeoff.DirectoryUser{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, nil
}

func (d *Directory) ListActiveForHierarchy(ctx context.Context) ([]hierarchy.Employee, error) {
	users, err := d.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	employees := make([]hierarchy.Employee, 0, len(users))
	for _, u := range users {
		employees = append(employees, hierarchy.Employee{
			ID:                 u.ID,
			Name:               u.Name,
			Email:              u.Email,
			Role:               u.Role,
			Department:         u.Department,
			Designation:        u.Designation,
			ProfileImage:       u.ProfileImage,
			ReportingManagerID: u.ReportingManagerID,
		})
	}
	return employees, nil
}
