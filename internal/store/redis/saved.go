package redis

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

// SaveMarks replaces a session's saved marks. An empty list deletes the key.
func (s *Store) SaveMarks(ctx context.Context, sessionID string, marks []domain.SavedMark) error {
	if len(marks) == 0 {
		if err := s.client.Del(ctx, SavedKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("failed to clear saved marks: %w", err)
		}
		return nil
	}

	if err := s.setJSON(ctx, SavedKey(sessionID), marks); err != nil {
		return fmt.Errorf("failed to save marks: %w", err)
	}
	return nil
}

// LoadMarks retrieves a session's saved marks, nil when none are stored
func (s *Store) LoadMarks(ctx context.Context, sessionID string) ([]domain.SavedMark, error) {
	var marks []domain.SavedMark
	if _, err := s.getJSON(ctx, SavedKey(sessionID), &marks); err != nil {
		return nil, fmt.Errorf("failed to load marks: %w", err)
	}
	return marks, nil
}
