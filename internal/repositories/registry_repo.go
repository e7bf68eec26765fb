package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "tourbook/internal/config"
	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/utils"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DriverRepository) GetByID(id domain.ID) (models.Driver, error) {
	var d models.Driver
	err := r.db().QueryRow(`
		SELECT id, name, nic, license_no, phone FROM drivers WHERE id=? LIMIT 1
	`, id).Scan(&d.ID, &d.Name, &d.NIC, &d.LicenseNo, &d.Phone)
	if err != nil {
		return models.Driver{}, err
	}
	return d, nil
}

func (r DriverRepository) List() ([]models.Driver, error) {
	rows, err := r.db().Query(`SELECT id, name, nic, license_no, phone FROM drivers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.NIC, &d.LicenseNo, &d.Phone); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) Insert(d models.Driver) (domain.ID, error) {
	res, err := r.db().Exec(`
		INSERT INTO drivers (name, nic, license_no, phone) VALUES (?, ?, ?, ?)
	`, d.Name, d.NIC, d.LicenseNo, d.Phone)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}

func (r DriverRepository) Update(d models.Driver) error {
	res, err := r.db().Exec(`
		UPDATE drivers SET name=?, nic=?, license_no=?, phone=? WHERE id=?
	`, d.Name, d.NIC, d.LicenseNo, d.Phone, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r DriverRepository) Delete(id domain.ID) error {
	res, err := r.db().Exec(`DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r VehicleRepository) GetByID(id domain.ID) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.db().QueryRow(`
		SELECT id, plate_no, vehicle_type, capacity, model FROM vehicles WHERE id=? LIMIT 1
	`, id).Scan(&v.ID, &v.PlateNo, &v.Type, &v.Capacity, &v.Model)
	if err != nil {
		return models.Vehicle{}, err
	}
	return v, nil
}

func (r VehicleRepository) List() ([]models.Vehicle, error) {
	rows, err := r.db().Query(`SELECT id, plate_no, vehicle_type, capacity, model FROM vehicles ORDER BY plate_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.PlateNo, &v.Type, &v.Capacity, &v.Model); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ExistingIDs filters the input down to IDs that resolve to vehicle rows,
// preserving input order.
func (r VehicleRepository) ExistingIDs(ids []domain.ID) ([]domain.ID, error) {
	if len(ids) == 0 {
		return []domain.ID{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := r.db().Query(fmt.Sprintf(`SELECT id FROM vehicles WHERE id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := map[domain.ID]bool{}
	for rows.Next() {
		var id domain.ID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := []domain.ID{}
	for _, id := range ids {
		if found[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r VehicleRepository) Insert(v models.Vehicle) (domain.ID, error) {
	res, err := r.db().Exec(`
		INSERT INTO vehicles (plate_no, vehicle_type, capacity, model) VALUES (?, ?, ?, ?)
	`, v.PlateNo, v.Type, v.Capacity, v.Model)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}

func (r VehicleRepository) Update(v models.Vehicle) error {
	res, err := r.db().Exec(`
		UPDATE vehicles SET plate_no=?, vehicle_type=?, capacity=?, model=? WHERE id=?
	`, v.PlateNo, v.Type, v.Capacity, v.Model, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r VehicleRepository) Delete(id domain.ID) error {
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type GuideRepository struct {
	DB *sql.DB
}

func (r GuideRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r GuideRepository) GetByID(id domain.ID) (models.GuideApplication, error) {
	var (
		g         models.GuideApplication
		languages string
	)
	err := r.db().QueryRow(`
		SELECT id, name, email, phone, languages, experience_years
		FROM guide_applications WHERE id=? LIMIT 1
	`, id).Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &languages, &g.ExperienceYears)
	if err != nil {
		return models.GuideApplication{}, err
	}
	g.Languages = utils.SplitList(languages)
	return g, nil
}

func (r GuideRepository) List() ([]models.GuideApplication, error) {
	rows, err := r.db().Query(`
		SELECT id, name, email, phone, languages, experience_years
		FROM guide_applications ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.GuideApplication{}
	for rows.Next() {
		var (
			g         models.GuideApplication
			languages string
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &languages, &g.ExperienceYears); err != nil {
			return nil, err
		}
		g.Languages = utils.SplitList(languages)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r GuideRepository) Insert(g models.GuideApplication) (domain.ID, error) {
	res, err := r.db().Exec(`
		INSERT INTO guide_applications (name, email, phone, languages, experience_years)
		VALUES (?, ?, ?, ?, ?)
	`, g.Name, g.Email, g.Phone, utils.JoinList(g.Languages), g.ExperienceYears)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}

func (r GuideRepository) Update(g models.GuideApplication) error {
	res, err := r.db().Exec(`
		UPDATE guide_applications
		SET name=?, email=?, phone=?, languages=?, experience_years=?
		WHERE id=?
	`, g.Name, g.Email, g.Phone, utils.JoinList(g.Languages), g.ExperienceYears, g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r GuideRepository) Delete(id domain.ID) error {
	res, err := r.db().Exec(`DELETE FROM guide_applications WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
