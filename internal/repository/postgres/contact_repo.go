package postgres

import (
	"context"
	"fmt"
	"go-portfolio/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// execer is the subset of *pgxpool.Pool the archive needs.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const createContactMessagesTable = `
CREATE TABLE IF NOT EXISTS contact_messages (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT NOT NULL,
    message     TEXT NOT NULL,
    client_ip   TEXT NOT NULL,
    received_at TIMESTAMPTZ NOT NULL
)`

type contactRepo struct {
	db execer
}

func NewContactRepository(db execer) domain.ContactRepository {
	return &contactRepo{db: db}
}

// Migrate creates the archive table when it does not exist yet.
func Migrate(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, createContactMessagesTable); err != nil {
		return fmt.Errorf("create contact_messages: %w", err)
	}
	return nil
}

func (r *contactRepo) Save(ctx context.Context, msg *domain.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	query := `INSERT INTO contact_messages (id, name, email, message, client_ip, received_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, msg.ID, msg.Name, msg.Email, msg.Message, msg.ClientIP, msg.ReceivedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}
