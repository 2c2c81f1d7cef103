package service

import (
	"context"

	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/sse"
)

type EmployeeService struct {
	repo *repository.EmployeeRepository
}

func NewEmployeeService(repo *repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

type EmployeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

func (s *EmployeeService) Create(ctx context.Context, req EmployeeRequest) (*entity.Employee, error) {
	e := &entity.Employee{
		Name:   req.Name,
		Phone:  req.Phone,
		Active: true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	sse.PublishEntityChanged("employees", "created", e.ID)
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uint, req EmployeeRequest) (*entity.Employee, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Name = req.Name
	e.Phone = req.Phone
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	sse.PublishEntityChanged("employees", "updated", e.ID)
	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	sse.PublishEntityChanged("employees", "deleted", id)
	return nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*entity.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, page, pageSize int, keyword string) ([]entity.Employee, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, keyword)
}
