package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storyverse/story-service/internal/story/domain"
)

// DB is the subset of pgxpool.Pool the repository uses; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Story, error) {
	query := `
		SELECT s.id, s.owner_id, u.username, s.title, s.content, s.created_at, s.updated_at
		FROM stories s
		JOIN users u ON u.id = s.owner_id
		ORDER BY s.created_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var s domain.Story
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.OwnerUsername, &s.Title, &s.Content, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	return stories, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Story, error) {
	query := `
		SELECT s.id, s.owner_id, u.username, s.title, s.content, s.created_at, s.updated_at
		FROM stories s
		JOIN users u ON u.id = s.owner_id
		WHERE s.id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var s domain.Story
	err := row.Scan(&s.ID, &s.OwnerID, &s.OwnerUsername, &s.Title, &s.Content, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get story by id: %w", err)
	}

	return &s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, story *domain.Story) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO stories (id, owner_id, title, content, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, story.ID, story.OwnerID, story.Title, story.Content, story.CreatedAt, story.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}

	return nil
}

// UpdateIfOwner updates a story only when it is owned by story.OwnerID. The
// ownership check lives in the WHERE clause, so a mismatch reports false the
// same way an unknown id does.
func (r *PostgresRepository) UpdateIfOwner(ctx context.Context, story *domain.Story) (bool, error) {
	cmd, err := r.db.Exec(ctx, `
        UPDATE stories
        SET title = $1, content = $2, updated_at = $3
        WHERE id = $4 AND owner_id = $5
    `, story.Title, story.Content, story.UpdatedAt, story.ID, story.OwnerID)

	if err != nil {
		return false, fmt.Errorf("failed to update story: %w", err)
	}

	return cmd.RowsAffected() > 0, nil
}

// DeleteIfOwner removes a story only when it is owned by ownerID.
func (r *PostgresRepository) DeleteIfOwner(ctx context.Context, id, ownerID string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `
        DELETE FROM stories
        WHERE id = $1 AND owner_id = $2
    `, id, ownerID)

	if err != nil {
		return false, fmt.Errorf("failed to delete story: %w", err)
	}

	return cmd.RowsAffected() > 0, nil
}

var _ domain.StoryRepository = (*PostgresRepository)(nil)
