package repositories

import (
	"database/sql"
	"time"

	intconfig "tourbook/internal/config"
	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
)

type SalaryRepository struct {
	DB *sql.DB
}

func (r SalaryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const salaryColumns = `id, employee_id, currency, base,
	DATE_FORMAT(effective_from, '%Y-%m-%d'), DATE_FORMAT(effective_to, '%Y-%m-%d'), notes`

func scanSalary(row interface{ Scan(...any) error }) (models.Salary, error) {
	var (
		s  models.Salary
		to sql.NullString
	)
	if err := row.Scan(&s.ID, &s.EmployeeID, &s.Currency, &s.Base, &s.EffectiveFrom, &to, &s.Notes); err != nil {
		return models.Salary{}, err
	}
	if to.Valid {
		s.EffectiveTo = &to.String
	}
	return s, nil
}

func (r SalaryRepository) components(salaryID domain.ID) ([]models.SalaryComponent, error) {
	return listComponents(r.db(), `SELECT id, comp_type, name, amount, percent_of_base FROM salary_components WHERE salary_id=? ORDER BY id`, salaryID)
}

func listComponents(db *sql.DB, query string, parentID domain.ID) ([]models.SalaryComponent, error) {
	rows, err := db.Query(query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SalaryComponent{}
	for rows.Next() {
		var c models.SalaryComponent
		if err := rows.Scan(&c.ID, &c.Type, &c.Name, &c.Amount, &c.PercentOfBase); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r SalaryRepository) GetByID(id domain.ID) (models.Salary, error) {
	s, err := scanSalary(r.db().QueryRow(`SELECT `+salaryColumns+` FROM salaries WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Salary{}, err
	}
	s.Components, err = r.components(s.ID)
	return s, err
}

func (r SalaryRepository) List() ([]models.Salary, error) {
	rows, err := r.db().Query(`SELECT ` + salaryColumns + ` FROM salaries ORDER BY effective_from DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Salary{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Components, err = r.components(out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListOverlapping returns salaries whose effective interval intersects
// [from, to]. A NULL effective_to means open-ended.
func (r SalaryRepository) ListOverlapping(from, to time.Time) ([]models.Salary, error) {
	rows, err := r.db().Query(`
		SELECT `+salaryColumns+` FROM salaries
		WHERE effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)
	`, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Salary{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Components, err = r.components(out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r SalaryRepository) Insert(s models.Salary) (domain.ID, error) {
	var to any
	if s.EffectiveTo != nil {
		to = *s.EffectiveTo
	}
	res, err := r.db().Exec(`
		INSERT INTO salaries (employee_id, currency, base, effective_from, effective_to, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.EmployeeID, s.Currency, s.Base, s.EffectiveFrom, to, s.Notes)
	if err != nil {
		return 0, err
	}
	rawID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	id := domain.ID(rawID)
	if err := r.replaceComponents(id, s.Components); err != nil {
		return 0, err
	}
	return id, nil
}

func (r SalaryRepository) Update(s models.Salary) error {
	var to any
	if s.EffectiveTo != nil {
		to = *s.EffectiveTo
	}
	res, err := r.db().Exec(`
		UPDATE salaries SET employee_id=?, currency=?, base=?, effective_from=?, effective_to=?, notes=?
		WHERE id=?
	`, s.EmployeeID, s.Currency, s.Base, s.EffectiveFrom, to, s.Notes, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return r.replaceComponents(s.ID, s.Components)
}

func (r SalaryRepository) replaceComponents(salaryID domain.ID, components []models.SalaryComponent) error {
	if _, err := r.db().Exec(`DELETE FROM salary_components WHERE salary_id=?`, salaryID); err != nil {
		return err
	}
	for _, c := range components {
		if _, err := r.db().Exec(`
			INSERT INTO salary_components (salary_id, comp_type, name, amount, percent_of_base)
			VALUES (?, ?, ?, ?, ?)
		`, salaryID, c.Type, c.Name, c.Amount, c.PercentOfBase); err != nil {
			return err
		}
	}
	return nil
}

func (r SalaryRepository) Delete(id domain.ID) error {
	if _, err := r.db().Exec(`DELETE FROM salary_components WHERE salary_id=?`, id); err != nil {
		return err
	}
	res, err := r.db().Exec(`DELETE FROM salaries WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type VehicleSalaryRepository struct {
	DB *sql.DB
}

func (r VehicleSalaryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleSalaryColumns = `id, vehicle_id, currency, base,
	DATE_FORMAT(effective_from, '%Y-%m-%d'), DATE_FORMAT(effective_to, '%Y-%m-%d'), notes`

func scanVehicleSalary(row interface{ Scan(...any) error }) (models.VehicleSalary, error) {
	var (
		s  models.VehicleSalary
		to sql.NullString
	)
	if err := row.Scan(&s.ID, &s.VehicleID, &s.Currency, &s.Base, &s.EffectiveFrom, &to, &s.Notes); err != nil {
		return models.VehicleSalary{}, err
	}
	if to.Valid {
		s.EffectiveTo = &to.String
	}
	return s, nil
}

func (r VehicleSalaryRepository) components(id domain.ID) ([]models.SalaryComponent, error) {
	return listComponents(r.db(), `SELECT id, comp_type, name, amount, percent_of_base FROM vehicle_salary_components WHERE vehicle_salary_id=? ORDER BY id`, id)
}

func (r VehicleSalaryRepository) GetByID(id domain.ID) (models.VehicleSalary, error) {
	s, err := scanVehicleSalary(r.db().QueryRow(`SELECT `+vehicleSalaryColumns+` FROM vehicle_salaries WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.VehicleSalary{}, err
	}
	s.Components, err = r.components(s.ID)
	return s, err
}

func (r VehicleSalaryRepository) List() ([]models.VehicleSalary, error) {
	rows, err := r.db().Query(`SELECT ` + vehicleSalaryColumns + ` FROM vehicle_salaries ORDER BY effective_from DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.VehicleSalary{}
	for rows.Next() {
		s, err := scanVehicleSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Components, err = r.components(out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r VehicleSalaryRepository) ListOverlapping(from, to time.Time) ([]models.VehicleSalary, error) {
	rows, err := r.db().Query(`
		SELECT `+vehicleSalaryColumns+` FROM vehicle_salaries
		WHERE effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)
	`, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.VehicleSalary{}
	for rows.Next() {
		s, err := scanVehicleSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Components, err = r.components(out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r VehicleSalaryRepository) Insert(s models.VehicleSalary) (domain.ID, error) {
	var to any
	if s.EffectiveTo != nil {
		to = *s.EffectiveTo
	}
	res, err := r.db().Exec(`
		INSERT INTO vehicle_salaries (vehicle_id, currency, base, effective_from, effective_to, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.VehicleID, s.Currency, s.Base, s.EffectiveFrom, to, s.Notes)
	if err != nil {
		return 0, err
	}
	rawID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	id := domain.ID(rawID)
	if err := r.replaceComponents(id, s.Components); err != nil {
		return 0, err
	}
	return id, nil
}

func (r VehicleSalaryRepository) Update(s models.VehicleSalary) error {
	var to any
	if s.EffectiveTo != nil {
		to = *s.EffectiveTo
	}
	res, err := r.db().Exec(`
		UPDATE vehicle_salaries SET vehicle_id=?, currency=?, base=?, effective_from=?, effective_to=?, notes=?
		WHERE id=?
	`, s.VehicleID, s.Currency, s.Base, s.EffectiveFrom, to, s.Notes, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return r.replaceComponents(s.ID, s.Components)
}

func (r VehicleSalaryRepository) replaceComponents(id domain.ID, components []models.SalaryComponent) error {
	if _, err := r.db().Exec(`DELETE FROM vehicle_salary_components WHERE vehicle_salary_id=?`, id); err != nil {
		return err
	}
	for _, c := range components {
		if _, err := r.db().Exec(`
			INSERT INTO vehicle_salary_components (vehicle_salary_id, comp_type, name, amount, percent_of_base)
			VALUES (?, ?, ?, ?, ?)
		`, id, c.Type, c.Name, c.Amount, c.PercentOfBase); err != nil {
			return err
		}
	}
	return nil
}

func (r VehicleSalaryRepository) Delete(id domain.ID) error {
	if _, err := r.db().Exec(`DELETE FROM vehicle_salary_components WHERE vehicle_salary_id=?`, id); err != nil {
		return err
	}
	res, err := r.db().Exec(`DELETE FROM vehicle_salaries WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
