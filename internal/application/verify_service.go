package application

import (
	"errors"
	"fmt"

	"github.com/commitcraft/commitcraft/internal/domain"
)

// Report is the outcome of verifying one commit message.
type Report struct {
	Valid      bool               `json:"valid"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

// VerifyService checks commit message text or files against the configured
// format rules.
type VerifyService struct {
	config domain.ConfigLoader
	store  domain.MessageStore
}

// NewVerifyService creates a VerifyService with its outbound dependencies.
func NewVerifyService(config domain.ConfigLoader, store domain.MessageStore) *VerifyService {
	return &VerifyService{config: config, store: store}
}

// VerifyText validates raw commit message text. An empty message is
// reported as an invalid message, not an error, so the CLI can show it
// alongside other violations.
func (s *VerifyService) VerifyText(text string) (*Report, error) {
	cfg, err := s.config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	violations, err := domain.ValidateText(text, cfg)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			return &Report{
				Valid:      false,
				Violations: []domain.Violation{{Rule: domain.RuleEmptyMessage, Message: "Empty commit message"}},
			}, nil
		}
		return nil, err
	}

	return &Report{Valid: len(violations) == 0, Violations: violations}, nil
}

// VerifyFile validates the commit message stored at path.
func (s *VerifyService) VerifyFile(path string) (*Report, error) {
	text, err := s.store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.VerifyText(text)
}
