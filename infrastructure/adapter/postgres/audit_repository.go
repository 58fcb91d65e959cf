// Package postgres implements the outbound repository ports on lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

// AuditRepository stores audit entries in the activity_logs table. The table
// is append-only: this adapter issues no UPDATE or DELETE statements.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) outbound.AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry *entity.AuditEntry) error {
	query := `
		INSERT INTO activity_logs (actor_id, created_on, action, description, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.ActorID,
		entry.CreatedOn,
		entry.Action,
		entry.Description,
		entry.Payload,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return nil
}

func (r *AuditRepository) Count(ctx context.Context, filter outbound.AuditFilter) (int, error) {
	whereClause, args := buildAuditWhere(filter)

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.actor_id
		%s
	`, whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return total, nil
}

func (r *AuditRepository) List(ctx context.Context, filter outbound.AuditFilter, offset, limit int) ([]entity.AuditEntryView, error) {
	whereClause, args := buildAuditWhere(filter)
	argIndex := len(args) + 1

	query := fmt.Sprintf(`
		SELECT l.id, l.actor_id, l.created_on, l.action, l.description, l.payload,
		       u.first_name, u.last_name, u.email
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.actor_id
		%s
		ORDER BY l.created_on DESC, l.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var views []entity.AuditEntryView
	for rows.Next() {
		var view entity.AuditEntryView
		var firstName, lastName, email sql.NullString
		err := rows.Scan(
			&view.ID,
			&view.ActorID,
			&view.CreatedOn,
			&view.Action,
			&view.Description,
			&view.Payload,
			&firstName,
			&lastName,
			&email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		// A NULL join side means the actor was deleted after the entry
		// was written.
		if email.Valid {
			view.ActorName = strings.TrimSpace(firstName.String + " " + lastName.String)
			view.ActorEmail = email.String
		} else {
			view.ActorName = entity.UnknownActorName
			view.ActorEmail = entity.UnknownActorEmail
		}

		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}

	return views, nil
}

func (r *AuditRepository) DistinctActions(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT action FROM activity_logs ORDER BY action ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit actions: %w", err)
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var action string
		if err := rows.Scan(&action); err != nil {
			return nil, fmt.Errorf("failed to scan audit action: %w", err)
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit actions: %w", err)
	}

	return actions, nil
}

// buildAuditWhere translates the filter into an AND-combined WHERE clause.
// Search matches the actor's name and email through the join as well as the
// entry's own action and description, so entries with a deleted actor stay
// reachable by action or description.
func buildAuditWhere(filter outbound.AuditFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.email ILIKE $%d OR l.action ILIKE $%d OR l.description ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("l.action = $%d", argIndex))
		args = append(args, filter.Action)
		argIndex++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("l.created_on >= $%d", argIndex))
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.Until != nil {
		conditions = append(conditions, fmt.Sprintf("l.created_on < $%d", argIndex))
		args = append(args, *filter.Until)
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
