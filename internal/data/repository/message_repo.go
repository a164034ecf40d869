package repository

import (
	"context"
	"errors"
	"fmt"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Message, error)
	CountAll(ctx context.Context) (int64, error)
}

type messageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMessageRepository(db database.PgxIface, log *zap.Logger) MessageRepository {
	return &messageRepository{
		db:  db,
		log: log.With(zap.String("repository", "message")),
	}
}

const messageColumns = `id, first_name, last_name, email, text, facility_id, feedback_type_id, created_at, updated_at`

func scanMessage(row pgx.Row) (*entity.Message, error) {
	var m entity.Message
	err := row.Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Text,
		&m.FacilityID,
		&m.FeedbackTypeID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	query := `INSERT INTO messages (` + messageColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		message.ID,
		message.FirstName,
		message.LastName,
		message.Email,
		message.Text,
		message.FacilityID,
		message.FeedbackTypeID,
		message.CreatedAt,
		message.UpdatedAt,
	)
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("invalid facility or feedback type reference: %w", err)
	}
	if err != nil {
		r.log.Error("Failed to create message",
			zap.Error(err),
			zap.String("email", message.Email),
		)
		return fmt.Errorf("create message from %s: %w", message.Email, err)
	}

	return nil
}

func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	message, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find message by ID",
			zap.Error(err),
			zap.String("message_id", id.String()),
		)
		return nil, fmt.Errorf("find message by ID %s: %w", id.String(), err)
	}

	return message, nil
}

func (r *messageRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all messages",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all messages limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			r.log.Error("Failed to scan message row", zap.Error(err))
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}

	return messages, nil
}

func (r *messageRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages`).Scan(&total); err != nil {
		r.log.Error("Failed to count messages", zap.Error(err))
		return 0, fmt.Errorf("count all messages: %w", err)
	}
	return total, nil
}
