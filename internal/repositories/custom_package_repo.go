package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	intconfig "tourbook/internal/config"
	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
)

type CustomPackageRepository struct {
	DB *sql.DB
}

func (r CustomPackageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const customPackageColumns = `id, full_name, email, phone, country, travellers,
	DATE_FORMAT(preferred_start, '%Y-%m-%d'), DATE_FORMAT(preferred_end, '%Y-%m-%d'),
	destinations, duration_days, status,
	assigned_guide_id, COALESCE(assigned_vehicle_ids, '[]'), COALESCE(assignment_notes, ''), assigned_at,
	created_at`

func scanCustomPackage(row interface{ Scan(...any) error }) (models.CustomPackage, error) {
	var (
		cp          models.CustomPackage
		guideID     sql.NullInt64
		rawVehicles string
		assignedAt  sql.NullTime
	)
	err := row.Scan(
		&cp.ID, &cp.FullName, &cp.Email, &cp.Phone, &cp.Country, &cp.Travellers,
		&cp.PreferredStart, &cp.PreferredEnd,
		&cp.Destinations, &cp.DurationDays, &cp.Status,
		&guideID, &rawVehicles, &cp.Assignment.Notes, &assignedAt,
		&cp.CreatedAt,
	)
	if err != nil {
		return models.CustomPackage{}, err
	}
	if guideID.Valid {
		id := domain.ID(guideID.Int64)
		cp.Assignment.GuideID = &id
	}
	if err := json.Unmarshal([]byte(rawVehicles), &cp.Assignment.VehicleIDs); err != nil {
		cp.Assignment.VehicleIDs = nil
	}
	if assignedAt.Valid {
		t := assignedAt.Time
		cp.Assignment.AssignedAt = &t
	}
	return cp, nil
}

func (r CustomPackageRepository) Insert(cp models.CustomPackage) (domain.ID, error) {
	res, err := r.db().Exec(`
		INSERT INTO custom_packages (
			full_name, email, phone, country, travellers,
			preferred_start, preferred_end, destinations, duration_days, status
		) VALUES (?,?,?,?,?,?,?,?,?,?)
	`,
		cp.FullName, cp.Email, cp.Phone, cp.Country, cp.Travellers,
		cp.PreferredStart, cp.PreferredEnd, cp.Destinations, cp.DurationDays, cp.Status,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}

func (r CustomPackageRepository) GetByID(id domain.ID) (models.CustomPackage, error) {
	row := r.db().QueryRow(`SELECT `+customPackageColumns+` FROM custom_packages WHERE id=? LIMIT 1`, id)
	return scanCustomPackage(row)
}

func (r CustomPackageRepository) List() ([]models.CustomPackage, error) {
	rows, err := r.db().Query(`SELECT ` + customPackageColumns + ` FROM custom_packages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CustomPackage{}
	for rows.Next() {
		cp, err := scanCustomPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

// UpdateAssignment mirrors the booking variant and additionally writes the
// derived status in the same statement.
func (r CustomPackageRepository) UpdateAssignment(id domain.ID, guideID *domain.ID, guideSet bool, vehicleIDs *[]domain.ID, notes *string, stamp bool, status string) error {
	sets := []string{"status=?"}
	args := []any{status}

	if guideSet {
		if guideID != nil {
			sets = append(sets, "assigned_guide_id=?")
			args = append(args, *guideID)
		} else {
			sets = append(sets, "assigned_guide_id=NULL")
		}
	}
	if vehicleIDs != nil {
		encoded, _ := json.Marshal(*vehicleIDs)
		sets = append(sets, "assigned_vehicle_ids=?")
		args = append(args, string(encoded))
	}
	if notes != nil {
		sets = append(sets, "assignment_notes=?")
		args = append(args, *notes)
	}
	if stamp {
		sets = append(sets, "assigned_at=COALESCE(assigned_at, NOW())")
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE custom_packages SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r CustomPackageRepository) Delete(id domain.ID) error {
	res, err := r.db().Exec(`DELETE FROM custom_packages WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAssignmentsOverlapping returns custom-package assignments whose
// preferred date range overlaps [start, end].
func (r CustomPackageRepository) ListAssignmentsOverlapping(start, end string) ([]AssignmentRow, error) {
	rows, err := r.db().Query(`
		SELECT assigned_guide_id, COALESCE(assigned_vehicle_ids, '[]'),
			DATE_FORMAT(preferred_start, '%Y-%m-%d'),
			DATE_FORMAT(preferred_end, '%Y-%m-%d')
		FROM custom_packages
		WHERE (assigned_guide_id IS NOT NULL OR JSON_LENGTH(COALESCE(assigned_vehicle_ids, '[]')) > 0)
		  AND preferred_start <= ? AND preferred_end >= ?
	`, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignmentRows(rows)
}
