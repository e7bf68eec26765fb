package repositories

import (
	"database/sql"

	intconfig "tourbook/internal/config"
	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
)

type OfferRepository struct {
	DB *sql.DB
}

func (r OfferRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const offerColumns = `id, title, discount_percent, DATE_FORMAT(valid_from, '%Y-%m-%d'), DATE_FORMAT(valid_to, '%Y-%m-%d')`

func (r OfferRepository) GetByID(id domain.ID) (models.Offer, error) {
	var o models.Offer
	err := r.db().QueryRow(`SELECT `+offerColumns+` FROM offers WHERE id=? LIMIT 1`, id).
		Scan(&o.ID, &o.Title, &o.DiscountPercent, &o.ValidFrom, &o.ValidTo)
	if err != nil {
		return models.Offer{}, err
	}
	return o, nil
}

func (r OfferRepository) List() ([]models.Offer, error) {
	rows, err := r.db().Query(`SELECT ` + offerColumns + ` FROM offers ORDER BY valid_from DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Offer{}
	for rows.Next() {
		var o models.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.DiscountPercent, &o.ValidFrom, &o.ValidTo); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r OfferRepository) Insert(o models.Offer) (domain.ID, error) {
	res, err := r.db().Exec(`
		INSERT INTO offers (title, discount_percent, valid_from, valid_to)
		VALUES (?, ?, ?, ?)
	`, o.Title, o.DiscountPercent, o.ValidFrom, o.ValidTo)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}

func (r OfferRepository) Update(o models.Offer) error {
	res, err := r.db().Exec(`
		UPDATE offers SET title=?, discount_percent=?, valid_from=?, valid_to=? WHERE id=?
	`, o.Title, o.DiscountPercent, o.ValidFrom, o.ValidTo, o.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r OfferRepository) Delete(id domain.ID) error {
	res, err := r.db().Exec(`DELETE FROM offers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
