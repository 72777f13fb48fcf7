package domain

// ConfigLoader supplies the immutable configuration snapshot for a run.
// Implementations must fall back to DefaultConfig when no user file exists.
type ConfigLoader interface {
	Load() (Config, error)
}

// DiffProvider supplies the staged diff text for a repository.
type DiffProvider interface {
	StagedDiff(repoPath string) (string, error)
}

// MessageStore reads and writes the commit message file.
type MessageStore interface {
	Read(path string) (string, error)
	Write(path string, text string) error
}
