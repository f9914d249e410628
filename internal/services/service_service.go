package services

import (
	"context"
	"fmt"
	"strings"

	"servicehub/internal/models"
)

type ServiceStore interface {
	CreateService(ctx context.Context, s models.Service) (models.Service, error)
	GetServiceByID(ctx context.Context, id int64) (models.Service, error)
	GetServicesByAccountID(ctx context.Context, accountID int64) ([]models.Service, error)
	UpdateService(ctx context.Context, s models.Service) (models.Service, error)
	DeleteService(ctx context.Context, id int64) error
}

type ServiceService struct {
	ServiceRepo ServiceStore
}

func validateService(s models.Service) error {
	if s.Title == "" {
		return fmt.Errorf("%w: title is required", models.ErrInvalidArgument)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", models.ErrInvalidArgument)
	}
	return nil
}

func (s *ServiceService) CreateService(ctx context.Context, ownerID int64, req models.CreateServiceRequest) (models.Service, error) {
	svc := models.Service{
		AccountID:   ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
	}
	if err := validateService(svc); err != nil {
		return models.Service{}, err
	}
	return s.ServiceRepo.CreateService(ctx, svc)
}

func (s *ServiceService) GetService(ctx context.Context, id int64) (models.Service, error) {
	return s.ServiceRepo.GetServiceByID(ctx, id)
}

func (s *ServiceService) GetServicesByAccountID(ctx context.Context, accountID int64) ([]models.Service, error) {
	return s.ServiceRepo.GetServicesByAccountID(ctx, accountID)
}

func (s *ServiceService) UpdateService(ctx context.Context, callerID, id int64, req models.UpdateServiceRequest) (models.Service, error) {
	svc, err := s.ServiceRepo.GetServiceByID(ctx, id)
	if err != nil {
		return models.Service{}, err
	}
	if svc.AccountID != callerID {
		return models.Service{}, models.ErrNotOwner
	}

	if req.Title != nil {
		svc.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if err := validateService(svc); err != nil {
		return models.Service{}, err
	}
	return s.ServiceRepo.UpdateService(ctx, svc)
}

func (s *ServiceService) DeleteService(ctx context.Context, callerID, id int64) error {
	svc, err := s.ServiceRepo.GetServiceByID(ctx, id)
	if err != nil {
		return err
	}
	if svc.AccountID != callerID {
		return models.ErrNotOwner
	}
	return s.ServiceRepo.DeleteService(ctx, id)
}
