package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

type CarrierRepository struct {
	db *sql.DB
}

func NewCarrierRepository(db *sql.DB) outbound.CarrierRepository {
	return &CarrierRepository{db: db}
}

const carrierColumns = `id, carrier_code, company_name, contact_person, phone, email,
	address, status, created_by, created_on`

func (r *CarrierRepository) FindByID(ctx context.Context, id int64) (*entity.Carrier, error) {
	query := fmt.Sprintf(`SELECT %s FROM carriers WHERE id = $1`, carrierColumns)

	var carrier entity.Carrier
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&carrier.ID,
		&carrier.CarrierCode,
		&carrier.CompanyName,
		&carrier.ContactPerson,
		&carrier.Phone,
		&carrier.Email,
		&carrier.Address,
		&carrier.Status,
		&carrier.CreatedBy,
		&carrier.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrCarrierNotFound
		}
		return nil, fmt.Errorf("failed to find carrier: %w", err)
	}
	return &carrier, nil
}

func (r *CarrierRepository) Create(ctx context.Context, carrier *entity.Carrier) error {
	query := `
		INSERT INTO carriers (carrier_code, company_name, contact_person, phone, email,
			address, status, created_by, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		carrier.CarrierCode,
		carrier.CompanyName,
		carrier.ContactPerson,
		carrier.Phone,
		carrier.Email,
		carrier.Address,
		carrier.Status,
		carrier.CreatedBy,
		carrier.CreatedOn,
	).Scan(&carrier.ID)
	if err != nil {
		return fmt.Errorf("failed to create carrier: %w", err)
	}
	return nil
}

func (r *CarrierRepository) Update(ctx context.Context, carrier *entity.Carrier) error {
	query := `
		UPDATE carriers
		SET company_name = $2, contact_person = $3, phone = $4, email = $5,
			address = $6, status = $7
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		carrier.ID,
		carrier.CompanyName,
		carrier.ContactPerson,
		carrier.Phone,
		carrier.Email,
		carrier.Address,
		carrier.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update carrier: %w", err)
	}
	return requireRow(result, outbound.ErrCarrierNotFound)
}

func (r *CarrierRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM carriers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete carrier: %w", err)
	}
	return requireRow(result, outbound.ErrCarrierNotFound)
}

func (r *CarrierRepository) List(ctx context.Context, filter outbound.CarrierListFilter) ([]entity.Carrier, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(company_name ILIKE $%d OR carrier_code ILIKE $%d OR contact_person ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.Status != "" && filter.Status != "all" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM carriers
		%s
		ORDER BY created_on DESC, id DESC
	`, carrierColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query carriers: %w", err)
	}
	defer rows.Close()

	var carriers []entity.Carrier
	for rows.Next() {
		var carrier entity.Carrier
		err := rows.Scan(
			&carrier.ID,
			&carrier.CarrierCode,
			&carrier.CompanyName,
			&carrier.ContactPerson,
			&carrier.Phone,
			&carrier.Email,
			&carrier.Address,
			&carrier.Status,
			&carrier.CreatedBy,
			&carrier.CreatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan carrier: %w", err)
		}
		carriers = append(carriers, carrier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read carriers: %w", err)
	}
	return carriers, nil
}

// MaxID feeds carrier code generation. COALESCE keeps the first carrier at
// CAR-001 on an empty table.
func (r *CarrierRepository) MaxID(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM carriers`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to find max carrier id: %w", err)
	}
	return max, nil
}
