package models

import "tourbook/internal/domain"

const (
	EmployeeTypeDriver = "driver"
	EmployeeTypeGuide  = "guide"
)

// Employee is a thin payroll-side record, materialized lazily the first
// time a Salary references a raw Driver or GuideApplication ID. SourceType
// and SourceID point back at the record it was projected from; they are
// informational only and do not deduplicate repeated materializations.
type Employee struct {
	ID         domain.ID `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Code       string    `json:"code"`
	SourceType string    `json:"source_type"`
	SourceID   domain.ID `json:"source_id"`
}
