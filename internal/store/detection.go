package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Source values for Detection.Source.
const (
	SourceHTTP      = "http"
	SourceWebSocket = "websocket"
)

// Detection is one recorded recognition result.
type Detection struct {
	ID         string
	Text       string
	HandsCount int
	Source     string
	CreatedAt  time.Time
}

// DetectionRepository appends to and reads from the detection journal.
type DetectionRepository struct {
	db *sql.DB
}

// Detections returns the detection repository for this store.
func (s *Store) Detections() *DetectionRepository {
	return &DetectionRepository{db: s.db}
}

// Create inserts a detection, assigning an ID and timestamp when unset.
func (r *DetectionRepository) Create(d *Detection) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.Source == "" {
		d.Source = SourceHTTP
	}

	_, err := r.db.Exec(
		`INSERT INTO detections (id, text, hands_count, source, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Text, d.HandsCount, d.Source, d.CreatedAt,
	)
	return err
}

// GetByID retrieves a detection by its ID.
func (r *DetectionRepository) GetByID(id string) (*Detection, error) {
	d := &Detection{}

	err := r.db.QueryRow(
		`SELECT id, text, hands_count, source, created_at
		 FROM detections WHERE id = ?`,
		id,
	).Scan(&d.ID, &d.Text, &d.HandsCount, &d.Source, &d.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return d, nil
}

// List returns up to limit detections, newest first.
func (r *DetectionRepository) List(limit int) ([]*Detection, error) {
	rows, err := r.db.Query(
		`SELECT id, text, hands_count, source, created_at
		 FROM detections
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detections []*Detection
	for rows.Next() {
		d := &Detection{}
		if err := rows.Scan(&d.ID, &d.Text, &d.HandsCount, &d.Source, &d.CreatedAt); err != nil {
			return nil, err
		}
		detections = append(detections, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return detections, nil
}

// Count returns the number of recorded detections.
func (r *DetectionRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM detections`).Scan(&n)
	return n, err
}
