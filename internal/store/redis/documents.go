package redis

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

// SaveDocuments replaces a session's generated documents
func (s *Store) SaveDocuments(ctx context.Context, sessionID string, docs []domain.GeneratedDocument) error {
	if len(docs) == 0 {
		if err := s.client.Del(ctx, DocumentsKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("failed to clear documents: %w", err)
		}
		return nil
	}

	if err := s.setJSON(ctx, DocumentsKey(sessionID), docs); err != nil {
		return fmt.Errorf("failed to save documents: %w", err)
	}
	return nil
}

// LoadDocuments retrieves a session's generated documents
func (s *Store) LoadDocuments(ctx context.Context, sessionID string) ([]domain.GeneratedDocument, error) {
	var docs []domain.GeneratedDocument
	if _, err := s.getJSON(ctx, DocumentsKey(sessionID), &docs); err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	return docs, nil
}
