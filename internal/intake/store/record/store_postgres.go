package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"cccd-intake/internal/intake/models"
	"cccd-intake/internal/sentinel"
)

// PostgresStore persists identity records in PostgreSQL. Uniqueness of the
// identity number is enforced by the table constraint; this store only
// translates the violation into the sentinel.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, record *models.IdentityRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	query := `
		INSERT INTO cccd_records
			(cccd_moi, cmnd_cu, name, dob, gender, address, issue_date, phone,
			 username, front_image, back_image, face_cropped)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		record.IDNumber,
		record.OldIDNumber,
		record.Name,
		record.DateOfBirth,
		record.Gender,
		record.Address,
		record.IssueDate,
		record.Phone,
		record.Username,
		record.FrontImage,
		record.BackImage,
		record.FaceImage,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("identity number %s: %w", record.IDNumber, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByIDNumber(ctx context.Context, idNumber string) (*models.IdentityRecord, error) {
	query := selectColumns + ` WHERE cccd_moi = $1`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, idNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("identity number %s not found: %w", idNumber, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, username string, limit int) ([]*models.IdentityRecord, error) {
	query := selectColumns + `
		WHERE username = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.IdentityRecord, 0)
	for rows.Next() {
		record, err := scanRecordRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

const selectColumns = `
	SELECT id, cccd_moi, cmnd_cu, name, dob, gender, address, issue_date,
	       phone, username, front_image, back_image, face_cropped, created_at
	FROM cccd_records`

func scanRecord(row *sql.Row) (*models.IdentityRecord, error) {
	var record models.IdentityRecord
	err := row.Scan(
		&record.ID, &record.IDNumber, &record.OldIDNumber, &record.Name,
		&record.DateOfBirth, &record.Gender, &record.Address, &record.IssueDate,
		&record.Phone, &record.Username, &record.FrontImage, &record.BackImage,
		&record.FaceImage, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func scanRecordRows(rows *sql.Rows) (*models.IdentityRecord, error) {
	var record models.IdentityRecord
	err := rows.Scan(
		&record.ID, &record.IDNumber, &record.OldIDNumber, &record.Name,
		&record.DateOfBirth, &record.Gender, &record.Address, &record.IssueDate,
		&record.Phone, &record.Username, &record.FrontImage, &record.BackImage,
		&record.FaceImage, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
