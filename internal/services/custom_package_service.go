package services

import (
	"database/sql"
	"errors"
	"fmt"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/events"
	"tourbook/internal/repositories"
	"tourbook/internal/utils"
)

type CustomPackageService struct {
	Repo      repositories.CustomPackageRepository
	RequestID string
	Events    Notifier
}

func (s CustomPackageService) notify(source string) {
	if s.Events != nil {
		s.Events.PublishFinanceUpdate(source)
		return
	}
	events.PublishFinanceUpdate(source)
}

func (s CustomPackageService) Create(cp models.CustomPackage) (domain.ID, error) {
	cp.FullName = utils.TrimOrEmpty(cp.FullName)
	cp.Email = utils.NormalizeEmail(cp.Email)
	cp.Destinations = utils.TrimOrEmpty(cp.Destinations)

	if errs := ValidateCustomPackage(cp); errs.HasErrors() {
		return 0, errs
	}

	cp.Status = models.CustomPackageStatusPending
	id, err := s.Repo.Insert(cp)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "custom_packages", "create", fmt.Sprintf("custom_package_id=%d travellers=%d", id, cp.Travellers))
	s.notify("custom_packages")
	return id, nil
}

func (s CustomPackageService) Get(id domain.ID) (models.CustomPackage, error) {
	cp, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CustomPackage{}, domain.NotFoundError{Resource: "custom package", Err: err}
		}
		return models.CustomPackage{}, domain.InternalError{Err: err}
	}
	return cp, nil
}

func (s CustomPackageService) List(rc domain.RequestContext) ([]models.CustomPackage, error) {
	if !rc.IsAdmin() {
		return nil, domain.ForbiddenError{Msg: "admin only"}
	}
	out, err := s.Repo.List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s CustomPackageService) Delete(rc domain.RequestContext, id domain.ID) error {
	if !rc.IsAdmin() {
		return domain.ForbiddenError{Msg: "admin only"}
	}
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "custom package", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "custom_packages", "delete", fmt.Sprintf("custom_package_id=%d", id))
	s.notify("custom_packages")
	return nil
}
