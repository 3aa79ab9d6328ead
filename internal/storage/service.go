package storage

import (
	"context"
	"time"

	"backend-fleetdesk/internal/db"
	"backend-fleetdesk/internal/export"

	"github.com/google/uuid"
)

const defaultListLimit = 50

type ExportRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ReportType string    `json:"report_type"`
	Format     string    `json:"format"`
	FileName   string    `json:"file_name"`
	SizeBytes  int       `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) RecordExport(ctx context.Context, rec export.Record) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO export_artifacts (id, user_id, report_type, format, file_name, size_bytes)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, id, rec.UserID, rec.ReportType, rec.Format, rec.FileName, rec.SizeBytes)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListExports returns the newest exports first. An empty userID lists
// exports of every user.
func (s *Service) ListExports(ctx context.Context, userID string, limit int) ([]ExportRecord, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, report_type, format, file_name, size_bytes, created_at
		FROM export_artifacts
		WHERE ($1 = '' OR user_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExportRecord{}
	for rows.Next() {
		var r ExportRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.ReportType, &r.Format, &r.FileName, &r.SizeBytes, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
