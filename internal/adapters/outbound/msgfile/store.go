package msgfile

import "os"

// DefaultFileName is where generated commit messages are written.
const DefaultFileName = "commit.md"

// Store implements domain.MessageStore on the local filesystem.
type Store struct{}

// New creates a Store.
func New() *Store { return &Store{} }

// Read returns the contents of the message file at path.
func (s *Store) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write replaces the message file at path.
func (s *Store) Write(path string, text string) error {
	return os.WriteFile(path, []byte(text), 0644)
}
