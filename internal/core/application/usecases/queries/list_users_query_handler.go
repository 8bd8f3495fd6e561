package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	users := make([]UserView, 0)

	sql := `SELECT id, username, role FROM users`
	args := []any{}
	if query.role != nil {
		sql += ` WHERE role = ?`
		args = append(args, string(*query.role))
	}
	sql += ` ORDER BY username`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			raw  uuid.UUID
			view UserView
		)
		if err = rows.Scan(&raw, &view.Username, &view.Role); err != nil {
			return nil, err
		}
		if view.ID, err = toUUID(raw); err != nil {
			return nil, err
		}
		users = append(users, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
