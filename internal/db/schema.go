package db

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates all tables this service owns. Safe to run on every boot.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}
	return nil
}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'customer',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_user_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS offers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	discount_percent DOUBLE NOT NULL,
	valid_from DATE NOT NULL,
	valid_to DATE NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS packages (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	price DOUBLE NOT NULL,
	max_tourist INT NOT NULL DEFAULT 10,
	currency VARCHAR(10) NOT NULL DEFAULT 'USD',
	images JSON NULL,
	offer_id BIGINT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_package_offer (offer_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS drivers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	nic VARCHAR(20) NOT NULL,
	license_no VARCHAR(50) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS vehicles (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	plate_no VARCHAR(20) NOT NULL,
	vehicle_type VARCHAR(50) NOT NULL,
	capacity INT NOT NULL,
	model VARCHAR(255) NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_vehicle_plate (plate_no)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS guide_applications (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	languages TEXT NOT NULL,
	experience_years INT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	package_id BIGINT NOT NULL,
	qty INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'created',

	snapshot_name VARCHAR(255) NOT NULL DEFAULT '',
	snapshot_start_date DATE NULL,
	snapshot_end_date DATE NULL,
	snapshot_price DOUBLE NOT NULL DEFAULT 0,
	snapshot_max_tourist INT NOT NULL DEFAULT 0,
	snapshot_images JSON NULL,

	customer_first_name VARCHAR(255) NOT NULL,
	customer_last_name VARCHAR(255) NOT NULL,
	customer_email VARCHAR(255) NOT NULL,
	customer_country VARCHAR(10) NOT NULL,
	customer_phone_code VARCHAR(10) NOT NULL,
	customer_phone VARCHAR(30) NOT NULL,
	customer_paperless TINYINT(1) NOT NULL DEFAULT 0,
	customer_work_trip TINYINT(1) NOT NULL DEFAULT 0,
	customer_requests TEXT NOT NULL,

	pricing_price DOUBLE NOT NULL,
	pricing_qty INT NOT NULL,
	pricing_subtotal DOUBLE NOT NULL,
	pricing_service DOUBLE NOT NULL,
	pricing_city_tax DOUBLE NOT NULL,
	pricing_taxes DOUBLE NOT NULL,
	pricing_total DOUBLE NOT NULL,
	pricing_currency VARCHAR(10) NOT NULL DEFAULT 'USD',

	payment_brand VARCHAR(50) NOT NULL DEFAULT '',
	payment_last4 VARCHAR(4) NOT NULL DEFAULT '',
	payment_exp_month INT NOT NULL DEFAULT 0,
	payment_exp_year INT NOT NULL DEFAULT 0,
	payment_save_card TINYINT(1) NOT NULL DEFAULT 0,
	payment_promo_optin TINYINT(1) NOT NULL DEFAULT 0,
	payment_status VARCHAR(30) NOT NULL DEFAULT 'pending',

	assigned_guide_id BIGINT NULL,
	assigned_vehicle_ids JSON NULL,
	assignment_notes TEXT NULL,
	assigned_at DATETIME NULL,

	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_booking_user (user_id),
	KEY idx_booking_package (package_id),
	KEY idx_booking_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS custom_packages (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	full_name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(30) NOT NULL,
	country VARCHAR(10) NOT NULL,
	travellers INT NOT NULL,
	preferred_start DATE NOT NULL,
	preferred_end DATE NOT NULL,
	destinations VARCHAR(500) NOT NULL,
	duration_days INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',

	assigned_guide_id BIGINT NULL,
	assigned_vehicle_ids JSON NULL,
	assignment_notes TEXT NULL,
	assigned_at DATETIME NULL,

	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS employees (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	emp_type VARCHAR(20) NOT NULL,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(30) NOT NULL DEFAULT '',
	code VARCHAR(50) NOT NULL DEFAULT '',
	source_type VARCHAR(20) NOT NULL DEFAULT '',
	source_id BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_employee_source (source_type, source_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS salaries (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	employee_id BIGINT NOT NULL,
	currency VARCHAR(10) NOT NULL DEFAULT 'USD',
	base DOUBLE NOT NULL,
	effective_from DATE NOT NULL,
	effective_to DATE NULL,
	notes TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_salary_employee (employee_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS salary_components (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	salary_id BIGINT NOT NULL,
	comp_type VARCHAR(20) NOT NULL,
	name VARCHAR(255) NOT NULL,
	amount DOUBLE NOT NULL DEFAULT 0,
	percent_of_base DOUBLE NOT NULL DEFAULT 0,
	KEY idx_component_salary (salary_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS vehicle_salaries (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	vehicle_id BIGINT NOT NULL,
	currency VARCHAR(10) NOT NULL DEFAULT 'USD',
	base DOUBLE NOT NULL,
	effective_from DATE NOT NULL,
	effective_to DATE NULL,
	notes TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_vsalary_vehicle (vehicle_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS vehicle_salary_components (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	vehicle_salary_id BIGINT NOT NULL,
	comp_type VARCHAR(20) NOT NULL,
	name VARCHAR(255) NOT NULL,
	amount DOUBLE NOT NULL DEFAULT 0,
	percent_of_base DOUBLE NOT NULL DEFAULT 0,
	KEY idx_component_vsalary (vehicle_salary_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}
