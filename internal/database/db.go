package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the marketplace tables when they do not exist yet.  The
// service owns no migration history beyond create-if-missing; schema changes
// to existing deployments are applied out of band.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			is_admin TINYINT(1) NOT NULL DEFAULT 0,
			is_provider TINYINT(1) NOT NULL DEFAULT 0,
			is_business TINYINT(1) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS businesses (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			user_id BIGINT UNSIGNED NOT NULL UNIQUE,
			company VARCHAR(120),
			contact_name VARCHAR(120),
			phone VARCHAR(40),
			website VARCHAR(255),
			plan VARCHAR(20) NOT NULL DEFAULT 'free',
			lead_credits INT NOT NULL DEFAULT 3,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS providers (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			user_id BIGINT UNSIGNED NOT NULL UNIQUE,
			display_name VARCHAR(120) NOT NULL,
			phone VARCHAR(40),
			website VARCHAR(255),
			location VARCHAR(120),
			bio TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS acts (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			slug VARCHAR(255) UNIQUE,
			name VARCHAR(255) NOT NULL,
			act_type VARCHAR(100) NOT NULL DEFAULT '',
			location VARCHAR(120) NOT NULL DEFAULT '',
			price_from DOUBLE,
			rating DOUBLE,
			genres VARCHAR(255),
			image_url TEXT,
			video_url TEXT,
			description TEXT,
			featured TINYINT(1) NOT NULL DEFAULT 0,
			premium TINYINT(1) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS venues (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			slug VARCHAR(255) UNIQUE,
			name VARCHAR(255) NOT NULL,
			location VARCHAR(120) NOT NULL DEFAULT '',
			capacity INT,
			price_from DOUBLE,
			style VARCHAR(120),
			image_url TEXT,
			amenities TEXT,
			featured TINYINT(1) NOT NULL DEFAULT 0,
			premium TINYINT(1) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS packages (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			act_id BIGINT UNSIGNED NOT NULL,
			name VARCHAR(120) NOT NULL,
			price DOUBLE NOT NULL,
			duration_mins INT,
			description TEXT,
			FOREIGN KEY (act_id) REFERENCES acts(id)
		)`,
		`CREATE TABLE IF NOT EXISTS media (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			act_id BIGINT UNSIGNED NOT NULL,
			url TEXT NOT NULL,
			media_type VARCHAR(20) NOT NULL DEFAULT 'image',
			sort INT NOT NULL DEFAULT 0,
			FOREIGN KEY (act_id) REFERENCES acts(id)
		)`,
		`CREATE TABLE IF NOT EXISTS availability (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			act_id BIGINT UNSIGNED NOT NULL,
			date VARCHAR(20) NOT NULL,
			is_available TINYINT(1) NOT NULL DEFAULT 1,
			FOREIGN KEY (act_id) REFERENCES acts(id)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			customer_name VARCHAR(255) NOT NULL,
			customer_email VARCHAR(255) NOT NULL,
			date VARCHAR(20) NOT NULL,
			message TEXT,
			act_id BIGINT UNSIGNED,
			venue_id BIGINT UNSIGNED,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			booking_id BIGINT UNSIGNED NOT NULL,
			unlocked_by_business_id BIGINT UNSIGNED,
			FOREIGN KEY (booking_id) REFERENCES bookings(id)
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			author_name VARCHAR(120) NOT NULL,
			rating INT NOT NULL,
			comment TEXT NOT NULL,
			act_id BIGINT UNSIGNED,
			venue_id BIGINT UNSIGNED,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			response TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS submissions (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			kind VARCHAR(10) NOT NULL,
			listing_id BIGINT UNSIGNED NOT NULL,
			submitter_name VARCHAR(255),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
