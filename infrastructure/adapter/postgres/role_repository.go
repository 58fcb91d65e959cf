package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) outbound.RoleRepository {
	return &RoleRepository{db: db}
}

const roleColumns = `id, name, description, status, is_system_role, created_on`

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*entity.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM roles WHERE id = $1`, roleColumns)
	return scanRole(r.db.QueryRowContext(ctx, query, id))
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM roles WHERE LOWER(name) = LOWER($1) LIMIT 1`, roleColumns)
	return scanRole(r.db.QueryRowContext(ctx, query, name))
}

func (r *RoleRepository) Create(ctx context.Context, role *entity.Role) error {
	query := `
		INSERT INTO roles (id, name, description, status, is_system_role, created_on)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		role.ID,
		role.Name,
		role.Description,
		role.Status,
		role.IsSystemRole,
		role.CreatedOn,
	)
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (r *RoleRepository) Update(ctx context.Context, role *entity.Role) error {
	query := `
		UPDATE roles
		SET name = $2, description = $3, status = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, role.ID, role.Name, role.Description, role.Status)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return requireRow(result, outbound.ErrRoleNotFound)
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return requireRow(result, outbound.ErrRoleNotFound)
}

func (r *RoleRepository) List(ctx context.Context) ([]entity.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM roles ORDER BY name ASC`, roleColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []entity.Role
	for rows.Next() {
		var role entity.Role
		err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Description,
			&role.Status,
			&role.IsSystemRole,
			&role.CreatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roles: %w", err)
	}
	return roles, nil
}

func (r *RoleRepository) CountUsers(ctx context.Context, name string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count role assignments: %w", err)
	}
	return count, nil
}

func scanRole(row *sql.Row) (*entity.Role, error) {
	var role entity.Role
	err := row.Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.Status,
		&role.IsSystemRole,
		&role.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to scan role: %w", err)
	}
	return &role, nil
}
