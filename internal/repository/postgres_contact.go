package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresContactRepository struct {
	db *pgxpool.Pool
}

func NewPostgresContactRepository(db *pgxpool.Pool) *PostgresContactRepository {
	return &PostgresContactRepository{
		db: db,
	}
}

func (p *PostgresContactRepository) Create(ctx context.Context, message *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at
	`

	return p.db.QueryRow(ctx,
		query,
		message.Name,
		message.Email,
		message.Subject,
		message.Message).Scan(&message.ID, &message.IsRead, &message.CreatedAt)
}

func (p *PostgresContactRepository) GetAll(
	ctx context.Context,
	onlyUnread bool,
	pagination domain.Pagination) ([]*domain.ContactMessage, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, name, email, subject, message, is_read, created_at
		FROM contact_messages
		WHERE (is_read = FALSE OR $1 = FALSE)
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, pagination.SortColumn(), pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, onlyUnread, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	messages := []*domain.ContactMessage{}

	for rows.Next() {
		var message domain.ContactMessage

		err := rows.Scan(
			&totalRecords,
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Subject,
			&message.Message,
			&message.IsRead,
			&message.CreatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		messages = append(messages, &message)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return messages, metadata, nil
}

func (p *PostgresContactRepository) MarkAsRead(ctx context.Context, id int) (*domain.ContactMessage, error) {
	query := `
		UPDATE contact_messages
		SET is_read = TRUE
		WHERE id = $1
		RETURNING id, name, email, subject, message, is_read, created_at
	`

	var message domain.ContactMessage

	err := p.db.QueryRow(ctx, query, id).Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Subject,
		&message.Message,
		&message.IsRead,
		&message.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &message, nil
}
