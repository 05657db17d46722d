package screenings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-screener/internal/extract"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, batch_id, position, role, file_name, format, checksum, storage_key, job_description, result, created_at`

// CreateBatch inserts all screenings in one transaction.
func (r *PGRepo) CreateBatch(ctx context.Context, items []Screening) error {
	if len(items) == 0 {
		return nil
	}
	const query = `
INSERT INTO screenings (
	id, batch_id, position, role, file_name, format, checksum, storage_key,
	job_description, candidate_name, shortlisting_probability, result, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range items {
		payload, err := json.Marshal(s.Result)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query,
			s.ID,
			s.BatchID,
			s.Position,
			s.Role,
			s.FileName,
			string(s.Format),
			s.Checksum,
			s.StorageKey,
			s.JobDescription,
			s.Result.CandidateName,
			s.Result.ShortlistingProbability,
			payload,
			s.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert screening %s: %w", s.ID, err)
		}
	}
	return tx.Commit()
}

// GetByID returns a screening by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Screening, error) {
	query := `SELECT ` + selectColumns + ` FROM screenings WHERE id = $1 LIMIT 1`
	s, err := scanScreening(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Screening{}, ErrNotFound
		}
		return Screening{}, err
	}
	return s, nil
}

// List returns screenings ordered by created_at desc, role order within a batch.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Screening, error) {
	query := `SELECT ` + selectColumns + ` FROM screenings ORDER BY created_at DESC, position ASC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Screening{}
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScreening(row rowScanner) (Screening, error) {
	var s Screening
	var format string
	var result []byte
	if err := row.Scan(
		&s.ID,
		&s.BatchID,
		&s.Position,
		&s.Role,
		&s.FileName,
		&format,
		&s.Checksum,
		&s.StorageKey,
		&s.JobDescription,
		&result,
		&s.CreatedAt,
	); err != nil {
		return Screening{}, err
	}
	s.Format = extract.Format(format)
	if len(result) > 0 {
		if err := json.Unmarshal(result, &s.Result); err != nil {
			return Screening{}, fmt.Errorf("decode result %s: %w", s.ID, err)
		}
	}
	return s, nil
}
