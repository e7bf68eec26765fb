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

// AssignmentService covers guide/vehicle assignment for both bookings and
// custom packages. The write path never rejects a guide or vehicle that is
// already assigned elsewhere; Available is the read-side filter clients use
// to avoid double-assignment.
type AssignmentService struct {
	BookingRepo       repositories.BookingRepository
	CustomPackageRepo repositories.CustomPackageRepository
	GuideRepo         repositories.GuideRepository
	VehicleRepo       repositories.VehicleRepository
	RequestID         string
	Events            Notifier
}

func (s AssignmentService) notify(source string) {
	if s.Events != nil {
		s.Events.PublishFinanceUpdate(source)
		return
	}
	events.PublishFinanceUpdate(source)
}

// resolvePatch validates the guide reference and silently filters the
// vehicle list down to IDs that exist. Unknown vehicle IDs are dropped,
// not reported.
func (s AssignmentService) resolvePatch(patch models.AssignmentPatch) (models.AssignmentPatch, error) {
	if patch.GuideSet && patch.GuideID != nil {
		if _, err := s.GuideRepo.GetByID(*patch.GuideID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return patch, domain.NotFoundError{Resource: "guide", Err: err}
			}
			return patch, domain.InternalError{Err: err}
		}
	}
	if patch.VehicleIDs != nil {
		existing, err := s.VehicleRepo.ExistingIDs(*patch.VehicleIDs)
		if err != nil {
			return patch, domain.InternalError{Err: err}
		}
		patch.VehicleIDs = &existing
	}
	return patch, nil
}

// applied returns the assignment state as it will look after the patch.
func applied(current models.Assignment, patch models.AssignmentPatch) models.Assignment {
	next := current
	if patch.GuideSet {
		next.GuideID = patch.GuideID
	}
	if patch.VehicleIDs != nil {
		next.VehicleIDs = *patch.VehicleIDs
	}
	if patch.Notes != nil {
		next.Notes = *patch.Notes
	}
	return next
}

// UpdateBooking applies an assignment patch to a booking. assigned_at is
// stamped the first time the assignment turns non-empty and survives later
// clears.
func (s AssignmentService) UpdateBooking(rc domain.RequestContext, id domain.ID, patch models.AssignmentPatch) error {
	if !rc.IsAdmin() {
		return domain.ForbiddenError{Msg: "admin only"}
	}
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	patch, err = s.resolvePatch(patch)
	if err != nil {
		return err
	}

	next := applied(booking.Assignment, patch)
	stamp := next.HasAny() && booking.Assignment.AssignedAt == nil

	if err := s.BookingRepo.UpdateAssignment(id, patch.GuideID, patch.GuideSet, patch.VehicleIDs, patch.Notes, stamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "assignments", "update_booking", fmt.Sprintf("booking_id=%d stamped=%t", id, stamp))
	s.notify("bookings")
	return nil
}

// UpdateCustomPackage mirrors UpdateBooking and additionally derives the
// request status from the resulting assignment state.
func (s AssignmentService) UpdateCustomPackage(rc domain.RequestContext, id domain.ID, patch models.AssignmentPatch) error {
	if !rc.IsAdmin() {
		return domain.ForbiddenError{Msg: "admin only"}
	}
	cp, err := s.CustomPackageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "custom package", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	patch, err = s.resolvePatch(patch)
	if err != nil {
		return err
	}

	next := cp
	next.Assignment = applied(cp.Assignment, patch)
	stamp := next.Assignment.HasAny() && cp.Assignment.AssignedAt == nil
	next.DeriveStatus()

	if err := s.CustomPackageRepo.UpdateAssignment(id, patch.GuideID, patch.GuideSet, patch.VehicleIDs, patch.Notes, stamp, next.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "custom package", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "assignments", "update_custom_package", fmt.Sprintf("custom_package_id=%d status=%s", id, next.Status))
	s.notify("custom_packages")
	return nil
}

// Availability lists guides and vehicles not held by any assignment
// overlapping the window.
type Availability struct {
	Guides   []models.GuideApplication `json:"guides"`
	Vehicles []models.Vehicle          `json:"vehicles"`
}

func (s AssignmentService) Available(rc domain.RequestContext, start, end string) (Availability, error) {
	if !rc.IsAdmin() {
		return Availability{}, domain.ForbiddenError{Msg: "admin only"}
	}

	bookingRows, err := s.BookingRepo.ListAssignmentsOverlapping(start, end)
	if err != nil {
		return Availability{}, domain.InternalError{Err: err}
	}
	customRows, err := s.CustomPackageRepo.ListAssignmentsOverlapping(start, end)
	if err != nil {
		return Availability{}, domain.InternalError{Err: err}
	}

	usedGuides := map[domain.ID]bool{}
	usedVehicles := map[domain.ID]bool{}
	for _, row := range append(bookingRows, customRows...) {
		if row.GuideID != nil {
			usedGuides[*row.GuideID] = true
		}
		for _, vid := range row.VehicleIDs {
			usedVehicles[vid] = true
		}
	}

	guides, err := s.GuideRepo.List()
	if err != nil {
		return Availability{}, domain.InternalError{Err: err}
	}
	vehicles, err := s.VehicleRepo.List()
	if err != nil {
		return Availability{}, domain.InternalError{Err: err}
	}

	out := Availability{Guides: []models.GuideApplication{}, Vehicles: []models.Vehicle{}}
	for _, g := range guides {
		if !usedGuides[g.ID] {
			out.Guides = append(out.Guides, g)
		}
	}
	for _, v := range vehicles {
		if !usedVehicles[v.ID] {
			out.Vehicles = append(out.Vehicles, v)
		}
	}
	return out, nil
}
