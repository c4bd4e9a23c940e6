package dto

import (
	"time"

	"github.com/storyverse/story-service/internal/story/domain"
)

// StoryInput lists the writable fields of a story. The owner is never
// writable: any "user" or "owner" key in the request body is dropped here
// and the owner is derived from the authenticated caller.
type StoryInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type StoryOutput struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDomain(s *domain.Story) StoryOutput {
	return StoryOutput{
		ID:        s.ID,
		Title:     s.Title,
		Content:   s.Content,
		User:      s.OwnerUsername,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDomainList(stories []domain.Story) []StoryOutput {
	out := make([]StoryOutput, 0, len(stories))
	for i := range stories {
		out = append(out, FromDomain(&stories[i]))
	}
	return out
}
