package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_story_repository.go -package=mocks github.com/storyverse/story-service/internal/story/domain StoryRepository

// StoryRepository persists stories. UpdateIfOwner and DeleteIfOwner filter
// the target by owner in the lookup itself: a story owned by someone else
// behaves exactly like a story that does not exist.
type StoryRepository interface {
	List(ctx context.Context) ([]Story, error)
	GetByID(ctx context.Context, id string) (*Story, error)
	Create(ctx context.Context, story *Story) error
	UpdateIfOwner(ctx context.Context, story *Story) (bool, error)
	DeleteIfOwner(ctx context.Context, id, ownerID string) (bool, error)
}
