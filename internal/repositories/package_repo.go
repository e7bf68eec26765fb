package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "tourbook/internal/config"
	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
)

type PackageRepository struct {
	DB *sql.DB
}

func (r PackageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const packageColumns = `id, name, DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'), price, max_tourist, currency, COALESCE(images, '[]'), offer_id`

func scanPackage(row interface{ Scan(...any) error }) (models.Package, error) {
	var (
		p         models.Package
		rawImages string
		offerID   sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Price, &p.MaxTourist, &p.Currency, &rawImages, &offerID); err != nil {
		return models.Package{}, err
	}
	if err := json.Unmarshal([]byte(rawImages), &p.Images); err != nil {
		p.Images = nil
	}
	if offerID.Valid {
		id := domain.ID(offerID.Int64)
		p.OfferID = &id
	}
	return p, nil
}

func (r PackageRepository) GetByID(id domain.ID) (models.Package, error) {
	row := r.db().QueryRow(`SELECT `+packageColumns+` FROM packages WHERE id = ? LIMIT 1`, id)
	return scanPackage(row)
}

func (r PackageRepository) List() ([]models.Package, error) {
	rows, err := r.db().Query(`SELECT ` + packageColumns + ` FROM packages ORDER BY start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PackageRepository) Insert(p models.Package) (domain.ID, error) {
	images, _ := json.Marshal(p.Images)
	var offerID any
	if p.OfferID != nil {
		offerID = *p.OfferID
	}
	res, err := r.db().Exec(`
		INSERT INTO packages (name, start_date, end_date, price, max_tourist, currency, images, offer_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.StartDate, p.EndDate, p.Price, p.MaxTourist, p.Currency, string(images), offerID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}

func (r PackageRepository) Update(p models.Package) error {
	images, _ := json.Marshal(p.Images)
	var offerID any
	if p.OfferID != nil {
		offerID = *p.OfferID
	}
	res, err := r.db().Exec(`
		UPDATE packages
		SET name=?, start_date=?, end_date=?, price=?, max_tourist=?, currency=?, images=?, offer_id=?
		WHERE id=?
	`, p.Name, p.StartDate, p.EndDate, p.Price, p.MaxTourist, p.Currency, string(images), offerID, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r PackageRepository) Delete(id domain.ID) error {
	res, err := r.db().Exec(`DELETE FROM packages WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
