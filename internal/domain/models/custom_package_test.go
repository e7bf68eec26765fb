package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourbook/internal/domain"
)

func TestDeriveStatusAssignsOnGuide(t *testing.T) {
	guide := domain.ID(7)
	cp := CustomPackage{Status: CustomPackageStatusPending}
	cp.Assignment.GuideID = &guide
	cp.DeriveStatus()
	assert.Equal(t, CustomPackageStatusAssigned, cp.Status)
}

func TestDeriveStatusAssignsOnVehiclesOnly(t *testing.T) {
	cp := CustomPackage{Status: CustomPackageStatusApproved}
	cp.Assignment.VehicleIDs = []domain.ID{3}
	cp.DeriveStatus()
	assert.Equal(t, CustomPackageStatusAssigned, cp.Status)
}

func TestDeriveStatusRevertsClearedAssignmentToNew(t *testing.T) {
	cp := CustomPackage{Status: CustomPackageStatusAssigned}
	cp.DeriveStatus()
	assert.Equal(t, "new", cp.Status)
}

func TestDeriveStatusLeavesOtherStatusesAlone(t *testing.T) {
	cp := CustomPackage{Status: CustomPackageStatusCompleted}
	cp.DeriveStatus()
	assert.Equal(t, CustomPackageStatusCompleted, cp.Status)
}
