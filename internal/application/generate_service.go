package application

import (
	"errors"
	"fmt"

	"github.com/commitcraft/commitcraft/internal/domain"
)

// ErrNoStagedChanges reports that the repository has nothing staged to
// classify.
var ErrNoStagedChanges = errors.New("no staged changes (stage changes with 'git add' first)")

// Draft bundles a composed commit message with the classification and the
// configuration snapshot it was built from, so callers can re-compose and
// re-validate as the user edits.
type Draft struct {
	Message        domain.CommitMessage
	Classification domain.ClassificationResult
	Config         domain.Config
}

// GenerateService turns staged changes into a draft commit message.
type GenerateService struct {
	config domain.ConfigLoader
	diffs  domain.DiffProvider
	store  domain.MessageStore
}

// NewGenerateService creates a GenerateService with its outbound
// dependencies.
func NewGenerateService(config domain.ConfigLoader, diffs domain.DiffProvider, store domain.MessageStore) *GenerateService {
	return &GenerateService{config: config, diffs: diffs, store: store}
}

// Generate classifies the staged diff of the repository at repoPath and
// composes a draft message. Fails with ErrNoStagedChanges when the diff
// contains no file changes.
func (s *GenerateService) Generate(repoPath string, overrides domain.Overrides) (*Draft, error) {
	// 1. Load config
	cfg, err := s.config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// 2. Read the staged diff
	diff, err := s.diffs.StagedDiff(repoPath)
	if err != nil {
		return nil, fmt.Errorf("reading staged diff: %w", err)
	}
	if len(domain.ScanDiff(diff)) == 0 {
		return nil, ErrNoStagedChanges
	}

	// 3. Classify and compose
	result := domain.Classify(diff, cfg)
	msg := domain.Compose(result, cfg, overrides)

	return &Draft{Message: msg, Classification: result, Config: cfg}, nil
}

// Save writes the rendered message to path via the message store.
func (s *GenerateService) Save(path string, msg domain.CommitMessage) error {
	if err := s.store.Write(path, msg.Render()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
