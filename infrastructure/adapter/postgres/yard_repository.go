package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

type YardRepository struct {
	db *sql.DB
}

func NewYardRepository(db *sql.DB) outbound.YardRepository {
	return &YardRepository{db: db}
}

const yardColumns = `id, yard_name, address, status, created_by, created_on`

func (r *YardRepository) FindByID(ctx context.Context, id int64) (*entity.Yard, error) {
	query := fmt.Sprintf(`SELECT %s FROM yards WHERE id = $1`, yardColumns)

	var yard entity.Yard
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&yard.ID,
		&yard.YardName,
		&yard.Address,
		&yard.Status,
		&yard.CreatedBy,
		&yard.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrYardNotFound
		}
		return nil, fmt.Errorf("failed to find yard: %w", err)
	}
	return &yard, nil
}

func (r *YardRepository) Create(ctx context.Context, yard *entity.Yard) error {
	query := `
		INSERT INTO yards (yard_name, address, status, created_by, created_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		yard.YardName,
		yard.Address,
		yard.Status,
		yard.CreatedBy,
		yard.CreatedOn,
	).Scan(&yard.ID)
	if err != nil {
		return fmt.Errorf("failed to create yard: %w", err)
	}
	return nil
}

func (r *YardRepository) Update(ctx context.Context, yard *entity.Yard) error {
	query := `
		UPDATE yards
		SET yard_name = $2, address = $3, status = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, yard.ID, yard.YardName, yard.Address, yard.Status)
	if err != nil {
		return fmt.Errorf("failed to update yard: %w", err)
	}
	return requireRow(result, outbound.ErrYardNotFound)
}

func (r *YardRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM yards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete yard: %w", err)
	}
	return requireRow(result, outbound.ErrYardNotFound)
}

func (r *YardRepository) List(ctx context.Context) ([]entity.Yard, error) {
	query := fmt.Sprintf(`SELECT %s FROM yards ORDER BY id ASC`, yardColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query yards: %w", err)
	}
	defer rows.Close()

	var yards []entity.Yard
	for rows.Next() {
		var yard entity.Yard
		err := rows.Scan(
			&yard.ID,
			&yard.YardName,
			&yard.Address,
			&yard.Status,
			&yard.CreatedBy,
			&yard.CreatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan yard: %w", err)
		}
		yards = append(yards, yard)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read yards: %w", err)
	}
	return yards, nil
}
