package services

import (
	"context"
	"fmt"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/logging"
)

// LabsService fetches the static labs content (projects and experiments).
type LabsService struct {
	client api.Client
	log    logging.Logger
}

func NewLabsService(client api.Client, log logging.Logger) *LabsService {
	return &LabsService{client: client, log: log}
}

// Fetch retrieves the labs descriptor. Content is not cached; every entry
// to the labs view refetches.
func (s *LabsService) Fetch(ctx context.Context) (*api.LabsContent, error) {
	content, err := s.client.FetchLabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching labs content: %w", err)
	}
	return content, nil
}

// Lookup finds an item by slug across projects and experiments.
func Lookup(content *api.LabsContent, slug string) (*api.LabsItem, bool) {
	if content == nil {
		return nil, false
	}
	for i := range content.Projects {
		if content.Projects[i].Slug == slug {
			return &content.Projects[i], true
		}
	}
	for i := range content.Experiments {
		if content.Experiments[i].Slug == slug {
			return &content.Experiments[i], true
		}
	}
	return nil, false
}
