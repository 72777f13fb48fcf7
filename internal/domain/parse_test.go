package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitcraft/commitcraft/internal/domain"
)

func TestParse_RoundTripOfComposedMessage(t *testing.T) {
	cfg := domain.DefaultConfig()
	res := domain.Classify(diffFor("api/v1.go", "remove the v1 endpoint", "add the v2 endpoint"), cfg)
	ov := domain.Overrides{Sections: map[string]string{
		"Testing Instructions": "Run the integration suite against a staging cluster.",
	}}
	msg := domain.Compose(res, cfg, ov)

	parsed, err := domain.Parse(msg.Render(), cfg)
	require.NoError(t, err)
	assert.Equal(t, msg, parsed)
}

func TestParse_RenderParseIsStable(t *testing.T) {
	cfg := domain.DefaultConfig()
	msg := domain.Compose(domain.Classify("", cfg), cfg, domain.Overrides{})

	once, err := domain.Parse(msg.Render(), cfg)
	require.NoError(t, err)
	twice, err := domain.Parse(once.Render(), cfg)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestParse_EmptyInputFails(t *testing.T) {
	cfg := domain.DefaultConfig()

	_, err := domain.Parse("", cfg)
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	_, err = domain.Parse("\n\n  \n", cfg)
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestParse_MissingBlankLineIsStructureError(t *testing.T) {
	cfg := domain.DefaultConfig()

	_, err := domain.Parse("Add login page\nbody right after subject\n", cfg)

	var serr *domain.StructureError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Line)
}

func TestParse_MultipleBlankLinesIsStructureError(t *testing.T) {
	cfg := domain.DefaultConfig()

	_, err := domain.Parse("Add login page\n\n\nbody\n", cfg)

	var serr *domain.StructureError
	require.ErrorAs(t, err, &serr)
}

func TestParse_SubjectOnlyMessage(t *testing.T) {
	cfg := domain.DefaultConfig()

	msg, err := domain.Parse("Add login page\n", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Add login page", msg.Subject)
	assert.Empty(t, msg.Sections)
}

func TestParse_RecognizedHeadingsSplitSections(t *testing.T) {
	cfg := domain.DefaultConfig()
	raw := "Add login page\n\n" +
		"# References [Required]\nCloses #42\n\n" +
		"# Changes Overview [Required]\nNew login form.\n"

	msg, err := domain.Parse(raw, cfg)
	require.NoError(t, err)
	require.Len(t, msg.Sections, 2)
	assert.Equal(t, "References", msg.Sections[0].Name)
	assert.Equal(t, "Closes #42", msg.Sections[0].Body)
	assert.Equal(t, "Changes Overview", msg.Sections[1].Name)
	assert.Equal(t, "New login form.", msg.Sections[1].Body)
}

func TestParse_LinesBeforeFirstHeadingFormOverview(t *testing.T) {
	cfg := domain.DefaultConfig()
	raw := "Add login page\n\n" +
		"A free-form overview paragraph.\n\n" +
		"# References [Required]\nCloses #42\n"

	msg, err := domain.Parse(raw, cfg)
	require.NoError(t, err)
	require.Len(t, msg.Sections, 2)
	assert.Empty(t, msg.Sections[0].Name)
	assert.Empty(t, msg.Sections[0].Heading)
	assert.Equal(t, "A free-form overview paragraph.", msg.Sections[0].Body)
}

func TestParse_UnknownHeadingPreservedAsOpaqueSection(t *testing.T) {
	cfg := domain.DefaultConfig()
	raw := "Add login page\n\n" +
		"# Rollout Plan [Optional]\nShip behind a flag.\n"

	msg, err := domain.Parse(raw, cfg)
	require.NoError(t, err)
	require.Len(t, msg.Sections, 1)
	assert.Empty(t, msg.Sections[0].Name, "unknown headings are not recognized sections")
	assert.Equal(t, "# Rollout Plan [Optional]", msg.Sections[0].Heading)
	assert.Equal(t, "Ship behind a flag.", msg.Sections[0].Body)

	// Opaque content survives a render round-trip.
	again, err := domain.Parse(msg.Render(), cfg)
	require.NoError(t, err)
	assert.Equal(t, msg, again)
}

func TestParse_WrongRequirementMarkerIsOpaque(t *testing.T) {
	cfg := domain.DefaultConfig()
	// "References" exists, but its configured heading says [Required];
	// heading matching is exact.
	raw := "Add login page\n\n# References [Optional]\nCloses #42\n"

	msg, err := domain.Parse(raw, cfg)
	require.NoError(t, err)
	require.Len(t, msg.Sections, 1)
	assert.Empty(t, msg.Sections[0].Name)
}

func TestParse_PlaceholderCommentsStayInBody(t *testing.T) {
	cfg := domain.DefaultConfig()
	raw := "Add login page\n\n" +
		"# References [Required]\n# Link to related tickets, docs, or discussions\nCloses #42\n"

	msg, err := domain.Parse(raw, cfg)
	require.NoError(t, err)
	require.Len(t, msg.Sections, 1)
	assert.Contains(t, msg.Sections[0].Body, "# Link to related tickets")
}

func TestParse_ErrorsAreNotSilentlyCorrected(t *testing.T) {
	cfg := domain.DefaultConfig()
	// Strict Parse refuses; only the validator reports this leniently.
	_, err := domain.Parse("Add login page\nno separator\n", cfg)
	assert.Error(t, err)
}
