package repositories

import (
	"database/sql"

	intconfig "tourbook/internal/config"
	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
)

type EmployeeRepository struct {
	DB *sql.DB
}

func (r EmployeeRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r EmployeeRepository) GetByID(id domain.ID) (models.Employee, error) {
	var e models.Employee
	err := r.db().QueryRow(`
		SELECT id, emp_type, name, phone, code, source_type, source_id
		FROM employees WHERE id=? LIMIT 1
	`, id).Scan(&e.ID, &e.Type, &e.Name, &e.Phone, &e.Code, &e.SourceType, &e.SourceID)
	if err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

func (r EmployeeRepository) List() ([]models.Employee, error) {
	rows, err := r.db().Query(`
		SELECT id, emp_type, name, phone, code, source_type, source_id
		FROM employees ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Type, &e.Name, &e.Phone, &e.Code, &e.SourceType, &e.SourceID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r EmployeeRepository) Insert(e models.Employee) (domain.ID, error) {
	res, err := r.db().Exec(`
		INSERT INTO employees (emp_type, name, phone, code, source_type, source_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Type, e.Name, e.Phone, e.Code, e.SourceType, e.SourceID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}
