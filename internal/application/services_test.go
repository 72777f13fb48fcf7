package application_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitcraft/commitcraft/internal/application"
	"github.com/commitcraft/commitcraft/internal/domain"
)

type fakeConfigLoader struct {
	cfg domain.Config
	err error
}

func (f fakeConfigLoader) Load() (domain.Config, error) { return f.cfg, f.err }

type fakeDiffProvider struct {
	diff string
	err  error
}

func (f fakeDiffProvider) StagedDiff(string) (string, error) { return f.diff, f.err }

type fakeStore struct {
	files map[string]string
	err   error
}

func newFakeStore() *fakeStore { return &fakeStore{files: make(map[string]string)} }

func (f *fakeStore) Read(path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	text, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("open %s: no such file", path)
	}
	return text, nil
}

func (f *fakeStore) Write(path, text string) error {
	if f.err != nil {
		return f.err
	}
	f.files[path] = text
	return nil
}

func stagedDiff(path string, lines ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n@@ -0,0 +1,%d @@\n",
		path, path, path, path, len(lines))
	for _, l := range lines {
		b.WriteString("+" + l + "\n")
	}
	return b.String()
}

func TestGenerateService_Generate(t *testing.T) {
	svc := application.NewGenerateService(
		fakeConfigLoader{cfg: domain.DefaultConfig()},
		fakeDiffProvider{diff: stagedDiff("auth/login.go", "add login form validation")},
		newFakeStore(),
	)

	draft, err := svc.Generate(".", domain.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "Add", draft.Classification.Verb)
	assert.True(t, strings.HasPrefix(draft.Message.Subject, "Add "))
	assert.True(t, draft.Message.HasSection("Changes Overview"))
	assert.NotEmpty(t, draft.Config.Verbs, "config snapshot travels with the draft")
}

func TestGenerateService_OverridesApplied(t *testing.T) {
	svc := application.NewGenerateService(
		fakeConfigLoader{cfg: domain.DefaultConfig()},
		fakeDiffProvider{diff: stagedDiff("a.go", "fix nil pointer in parser")},
		newFakeStore(),
	)

	draft, err := svc.Generate(".", domain.Overrides{Summary: "parser crash on empty input"})
	require.NoError(t, err)
	assert.Equal(t, "Fix parser crash on empty input", draft.Message.Subject)
}

func TestGenerateService_NoStagedChanges(t *testing.T) {
	svc := application.NewGenerateService(
		fakeConfigLoader{cfg: domain.DefaultConfig()},
		fakeDiffProvider{diff: ""},
		newFakeStore(),
	)

	_, err := svc.Generate(".", domain.Overrides{})
	assert.ErrorIs(t, err, application.ErrNoStagedChanges)
}

func TestGenerateService_ConfigErrorPropagates(t *testing.T) {
	svc := application.NewGenerateService(
		fakeConfigLoader{err: errors.New("bad toml")},
		fakeDiffProvider{diff: stagedDiff("a.go", "add thing")},
		newFakeStore(),
	)

	_, err := svc.Generate(".", domain.Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestGenerateService_DiffErrorPropagates(t *testing.T) {
	svc := application.NewGenerateService(
		fakeConfigLoader{cfg: domain.DefaultConfig()},
		fakeDiffProvider{err: errors.New("not a git repository")},
		newFakeStore(),
	)

	_, err := svc.Generate(".", domain.Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading staged diff")
}

func TestGenerateService_Save(t *testing.T) {
	store := newFakeStore()
	svc := application.NewGenerateService(
		fakeConfigLoader{cfg: domain.DefaultConfig()},
		fakeDiffProvider{},
		store,
	)
	msg := domain.CommitMessage{Subject: "Add login page"}

	require.NoError(t, svc.Save("commit.md", msg))
	assert.Equal(t, "Add login page\n", store.files["commit.md"])
}

func TestVerifyService_ValidText(t *testing.T) {
	svc := application.NewVerifyService(fakeConfigLoader{cfg: domain.DefaultConfig()}, newFakeStore())

	report, err := svc.VerifyText("Add login page\n")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Violations)
}

func TestVerifyService_InvalidText(t *testing.T) {
	svc := application.NewVerifyService(fakeConfigLoader{cfg: domain.DefaultConfig()}, newFakeStore())

	report, err := svc.VerifyText("add login page.\n")
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Len(t, report.Violations, 3)
}

func TestVerifyService_EmptyTextIsInvalidNotError(t *testing.T) {
	svc := application.NewVerifyService(fakeConfigLoader{cfg: domain.DefaultConfig()}, newFakeStore())

	report, err := svc.VerifyText("")
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, domain.RuleEmptyMessage, report.Violations[0].Rule)
}

func TestVerifyService_VerifyFile(t *testing.T) {
	store := newFakeStore()
	store.files["commit.md"] = "Add login page\n"
	svc := application.NewVerifyService(fakeConfigLoader{cfg: domain.DefaultConfig()}, store)

	report, err := svc.VerifyFile("commit.md")
	require.NoError(t, err)
	assert.True(t, report.Valid)
}

func TestVerifyService_VerifyFileMissing(t *testing.T) {
	svc := application.NewVerifyService(fakeConfigLoader{cfg: domain.DefaultConfig()}, newFakeStore())

	_, err := svc.VerifyFile("does-not-exist.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading does-not-exist.md")
}
