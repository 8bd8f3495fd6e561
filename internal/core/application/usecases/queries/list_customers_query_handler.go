package queries

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListCustomersQueryHandler struct {
	db *gorm.DB
}

func NewListCustomersQueryHandler(db *gorm.DB) ListCustomersQueryHandler {
	return ListCustomersQueryHandler{db: db}
}

func (h ListCustomersQueryHandler) Handle(ctx context.Context, query ListCustomersQuery) ([]CustomerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("customers").Select("id, name, contact, email")
	if query.search != "" {
		pattern := "%" + escapeLike(query.search) + "%"
		tx = tx.Where("name ILIKE ? OR contact ILIKE ?", pattern, pattern)
	}

	var rows []struct {
		ID      uuid.UUID
		Name    string
		Contact string
		Email   string
	}
	if err := tx.Order("name, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	customers := make([]CustomerView, 0, len(rows))
	for _, row := range rows {
		id, err := toUUID(row.ID)
		if err != nil {
			return nil, err
		}
		customers = append(customers, CustomerView{ID: id, Name: row.Name, Contact: row.Contact, Email: row.Email})
	}
	return customers, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
