package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	intconfig "tourbook/internal/config"
	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, user_id, package_id, qty, status,
	snapshot_name, COALESCE(DATE_FORMAT(snapshot_start_date, '%Y-%m-%d'), ''), COALESCE(DATE_FORMAT(snapshot_end_date, '%Y-%m-%d'), ''),
	snapshot_price, snapshot_max_tourist, COALESCE(snapshot_images, '[]'),
	customer_first_name, customer_last_name, customer_email, customer_country,
	customer_phone_code, customer_phone, customer_paperless, customer_work_trip, customer_requests,
	pricing_price, pricing_qty, pricing_subtotal, pricing_service, pricing_city_tax,
	pricing_taxes, pricing_total, pricing_currency,
	payment_brand, payment_last4, payment_exp_month, payment_exp_year,
	payment_save_card, payment_promo_optin, payment_status,
	assigned_guide_id, COALESCE(assigned_vehicle_ids, '[]'), COALESCE(assignment_notes, ''), assigned_at,
	created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var (
		b           models.Booking
		rawImages   string
		rawVehicles string
		guideID     sql.NullInt64
		assignedAt  sql.NullTime
	)
	err := row.Scan(
		&b.ID, &b.UserID, &b.PackageID, &b.Qty, &b.Status,
		&b.Snapshot.Name, &b.Snapshot.StartDate, &b.Snapshot.EndDate,
		&b.Snapshot.Price, &b.Snapshot.MaxTourist, &rawImages,
		&b.Customer.FirstName, &b.Customer.LastName, &b.Customer.Email, &b.Customer.Country,
		&b.Customer.PhoneCode, &b.Customer.Phone, &b.Customer.Paperless, &b.Customer.WorkTrip, &b.Customer.Requests,
		&b.Pricing.Price, &b.Pricing.Qty, &b.Pricing.Subtotal, &b.Pricing.Service, &b.Pricing.CityTax,
		&b.Pricing.Taxes, &b.Pricing.Total, &b.Pricing.Currency,
		&b.Payment.Brand, &b.Payment.Last4, &b.Payment.ExpMonth, &b.Payment.ExpYear,
		&b.Payment.SaveCard, &b.Payment.PromoOptIn, &b.Payment.Status,
		&guideID, &rawVehicles, &b.Assignment.Notes, &assignedAt,
		&b.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	if err := json.Unmarshal([]byte(rawImages), &b.Snapshot.Images); err != nil {
		b.Snapshot.Images = nil
	}
	if err := json.Unmarshal([]byte(rawVehicles), &b.Assignment.VehicleIDs); err != nil {
		b.Assignment.VehicleIDs = nil
	}
	if guideID.Valid {
		id := domain.ID(guideID.Int64)
		b.Assignment.GuideID = &id
	}
	if assignedAt.Valid {
		t := assignedAt.Time
		b.Assignment.AssignedAt = &t
	}
	return b, nil
}

func (r BookingRepository) Insert(b models.Booking) (domain.ID, error) {
	images, _ := json.Marshal(b.Snapshot.Images)
	res, err := r.db().Exec(`
		INSERT INTO bookings (
			user_id, package_id, qty, status,
			snapshot_name, snapshot_start_date, snapshot_end_date, snapshot_price, snapshot_max_tourist, snapshot_images,
			customer_first_name, customer_last_name, customer_email, customer_country,
			customer_phone_code, customer_phone, customer_paperless, customer_work_trip, customer_requests,
			pricing_price, pricing_qty, pricing_subtotal, pricing_service, pricing_city_tax,
			pricing_taxes, pricing_total, pricing_currency,
			payment_brand, payment_last4, payment_exp_month, payment_exp_year,
			payment_save_card, payment_promo_optin, payment_status
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		b.UserID, b.PackageID, b.Qty, b.Status,
		b.Snapshot.Name, b.Snapshot.StartDate, b.Snapshot.EndDate, b.Snapshot.Price, b.Snapshot.MaxTourist, string(images),
		b.Customer.FirstName, b.Customer.LastName, b.Customer.Email, b.Customer.Country,
		b.Customer.PhoneCode, b.Customer.Phone, b.Customer.Paperless, b.Customer.WorkTrip, b.Customer.Requests,
		b.Pricing.Price, b.Pricing.Qty, b.Pricing.Subtotal, b.Pricing.Service, b.Pricing.CityTax,
		b.Pricing.Taxes, b.Pricing.Total, b.Pricing.Currency,
		b.Payment.Brand, b.Payment.Last4, b.Payment.ExpMonth, b.Payment.ExpYear,
		b.Payment.SaveCard, b.Payment.PromoOptIn, b.Payment.Status,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return domain.ID(id), err
}

func (r BookingRepository) GetByID(id domain.ID) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	return scanBooking(row)
}

func (r BookingRepository) listWhere(where string, args ...any) ([]models.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListByUser(userID domain.ID) ([]models.Booking, error) {
	return r.listWhere("user_id=?", userID)
}

func (r BookingRepository) ListAll() ([]models.Booking, error) {
	return r.listWhere("")
}

// UpdatePatch writes the validated patch in one statement: pricing is
// replaced wholesale when present, customer fields individually.
func (r BookingRepository) UpdatePatch(id domain.ID, qty *int, pricing *models.PricingBreakdown, email, phone, requests *string) error {
	sets := []string{}
	args := []any{}

	if qty != nil && pricing != nil {
		sets = append(sets,
			"qty=?",
			"pricing_price=?", "pricing_qty=?", "pricing_subtotal=?", "pricing_service=?",
			"pricing_city_tax=?", "pricing_taxes=?", "pricing_total=?", "pricing_currency=?",
		)
		args = append(args,
			*qty,
			pricing.Price, pricing.Qty, pricing.Subtotal, pricing.Service,
			pricing.CityTax, pricing.Taxes, pricing.Total, pricing.Currency,
		)
	}
	if email != nil {
		sets = append(sets, "customer_email=?")
		args = append(args, *email)
	}
	if phone != nil {
		sets = append(sets, "customer_phone=?")
		args = append(args, *phone)
	}
	if requests != nil {
		sets = append(sets, "customer_requests=?")
		args = append(args, *requests)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateAssignment writes the assignment sub-state. assigned_at is stamped
// only when stamp is true and keeps its original value afterwards.
func (r BookingRepository) UpdateAssignment(id domain.ID, guideID *domain.ID, guideSet bool, vehicleIDs *[]domain.ID, notes *string, stamp bool) error {
	sets := []string{}
	args := []any{}

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
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r BookingRepository) Delete(id domain.ID) error {
	res, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncomeRow is one booking's contribution to finance aggregation.
type IncomeRow struct {
	CreatedAt time.Time
	Total     float64
}

// ListIncomeBetween returns pricing totals for bookings created inside the
// window. When onlyConfirmed is false every status counts (all-time mode).
func (r BookingRepository) ListIncomeBetween(from, to time.Time, onlyConfirmed bool) ([]IncomeRow, error) {
	q := `SELECT created_at, pricing_total FROM bookings WHERE created_at >= ? AND created_at <= ?`
	args := []any{from, to}
	if onlyConfirmed {
		q += ` AND status = ?`
		args = append(args, models.BookingStatusConfirmed)
	}

	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []IncomeRow{}
	for rows.Next() {
		var row IncomeRow
		if err := rows.Scan(&row.CreatedAt, &row.Total); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// AssignmentRow is the slice of assignment state needed for availability
// listings: who is held, by what, for which dates.
type AssignmentRow struct {
	GuideID    *domain.ID
	VehicleIDs []domain.ID
	StartDate  string
	EndDate    string
}

// ListAssignmentsOverlapping returns booking assignments whose snapshot
// date range overlaps [start, end].
func (r BookingRepository) ListAssignmentsOverlapping(start, end string) ([]AssignmentRow, error) {
	rows, err := r.db().Query(`
		SELECT assigned_guide_id, COALESCE(assigned_vehicle_ids, '[]'),
			COALESCE(DATE_FORMAT(snapshot_start_date, '%Y-%m-%d'), ''),
			COALESCE(DATE_FORMAT(snapshot_end_date, '%Y-%m-%d'), '')
		FROM bookings
		WHERE (assigned_guide_id IS NOT NULL OR JSON_LENGTH(COALESCE(assigned_vehicle_ids, '[]')) > 0)
		  AND snapshot_start_date <= ? AND snapshot_end_date >= ?
	`, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignmentRows(rows)
}

func scanAssignmentRows(rows *sql.Rows) ([]AssignmentRow, error) {
	out := []AssignmentRow{}
	for rows.Next() {
		var (
			row         AssignmentRow
			guideID     sql.NullInt64
			rawVehicles string
		)
		if err := rows.Scan(&guideID, &rawVehicles, &row.StartDate, &row.EndDate); err != nil {
			return nil, err
		}
		if guideID.Valid {
			id := domain.ID(guideID.Int64)
			row.GuideID = &id
		}
		if err := json.Unmarshal([]byte(rawVehicles), &row.VehicleIDs); err != nil {
			row.VehicleIDs = nil
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
