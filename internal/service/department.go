package service

import (
	"context"

	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/server"

	"github.com/pkg/errors"
)

// DepartmentLister reads departments.
type DepartmentLister interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

type DepartmentService struct {
	server *server.Server
	repo   DepartmentLister
}

func NewDepartmentService(s *server.Server, repo DepartmentLister) *DepartmentService {
	return &DepartmentService{
		server: s,
		repo:   repo,
	}
}

// ListDepartments never returns a nil slice, so an empty table encodes as [].
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if departments == nil {
		departments = []model.Department{}
	}
	return departments, nil
}
