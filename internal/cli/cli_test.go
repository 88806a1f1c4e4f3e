package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/cmdk/internal/testutil"
	"github.com/pluqqy/cmdk/pkg/files"
	"github.com/pluqqy/cmdk/pkg/models"
)

func TestOutputResults(t *testing.T) {
	data := map[string]int{"count": 2}

	var buf bytes.Buffer
	require.NoError(t, OutputResults(&buf, "json", data))
	assert.JSONEq(t, `{"count": 2}`, buf.String())

	buf.Reset()
	require.NoError(t, OutputResults(&buf, "yaml", data))
	assert.Equal(t, "count: 2\n", buf.String())

	assert.Error(t, OutputResults(&buf, "xml", data))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableFormatter(&buf)
	table.Header("KIND", "TITLE")
	table.Row("navigation", "Billing")
	table.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "KIND        TITLE", lines[0])
	assert.Equal(t, "navigation  Billing", lines[2])
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"Quarterly budget review", 12, "Quarterly..."},
		{"abcdef", 3, "abc"},
		{"abcdef", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateString(tt.in, tt.max), "TruncateString(%q, %d)", tt.in, tt.max)
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 minutes ago", FormatAge(now.Add(-3*time.Minute), now))
	assert.Equal(t, "2 hours ago", FormatAge(now.Add(-2*time.Hour), now))
}

func TestValidators(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml", "JSON"} {
		assert.NoError(t, ValidateOutputFormat(f))
	}
	assert.Error(t, ValidateOutputFormat("xml"))

	assert.NoError(t, ValidateLimit("limit", 0))
	assert.Error(t, ValidateLimit("limit", -1))

	assert.NoError(t, ValidateHref("/settings"))
	assert.Error(t, ValidateHref("settings"))
}

func TestPrintHelpers(t *testing.T) {
	var out, errOut bytes.Buffer
	SetIO(strings.NewReader("yes\n"), &out, &errOut)
	t.Cleanup(func() {
		SetIO(os.Stdin, os.Stdout, os.Stderr)
		SetGlobalFlags(false, false, false, false)
	})

	SetGlobalFlags(false, true, false, false)
	PrintSuccess("saved %d", 3)
	PrintWarning("careful")
	assert.Equal(t, "OK: saved 3\n", out.String())
	assert.Equal(t, "WARNING: careful\n", errOut.String())

	ok, err := Confirm("Proceed?", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Proceed? [y/N]: ")

	out.Reset()
	SetGlobalFlags(true, false, true, false)
	PrintInfo("hidden")
	assert.Empty(t, out.String())

	ok, err = Confirm("Skip?", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirm_DefaultOnEmptyAnswer(t *testing.T) {
	var out bytes.Buffer
	SetIO(strings.NewReader("\n"), &out, &out)
	t.Cleanup(func() { SetIO(os.Stdin, os.Stdout, os.Stderr) })
	SetGlobalFlags(false, false, false, false)

	ok, err := Confirm("Proceed?", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func chdirProject(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	oldDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { os.Chdir(oldDir) })
}

func TestCommandContext_ValidateProject(t *testing.T) {
	chdirProject(t)

	ctx, err := NewCommandContext()
	require.NoError(t, err)
	assert.ErrorIs(t, ctx.ValidateProject(), files.ErrNotInitialized)

	require.NoError(t, files.InitProjectStructure())
	assert.NoError(t, ctx.ValidateProject())
}

func TestCommandContext_LoadSettingsWithDefault(t *testing.T) {
	chdirProject(t)

	ctx, _ := NewCommandContext()
	settings := ctx.LoadSettingsWithDefault()
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestCommandContext_Client(t *testing.T) {
	chdirProject(t)
	t.Setenv("CMDK_API_TOKEN", "secret")

	ctx, _ := NewCommandContext()
	client, err := ctx.Client()
	require.NoError(t, err)
	assert.NotNil(t, client)

	ctx.Settings.API.BaseURL = "ftp://nope"
	_, err = ctx.Client()
	assert.Error(t, err)

	fake := testutil.NewFakeBackend()
	ctx.Backend = fake
	got, err := ctx.Client()
	require.NoError(t, err)
	assert.Same(t, fake, got)
}

func TestCommandContext_NewPalette(t *testing.T) {
	chdirProject(t)
	require.NoError(t, files.InitProjectStructure())

	ctx, _ := NewCommandContext()
	ctx.Settings = models.DefaultSettings()
	ctx.Settings.API.BaseURL = "not a url"

	// a broken API config only disables the remote sections
	p, err := ctx.NewPalette(PaletteOptions{Limit: 3})
	require.NoError(t, err)

	res := p.Query(t.Context(), "s")
	assert.Len(t, res.Navigation.Results, 3)
	assert.Empty(t, res.Workspaces.Results)
	assert.NoError(t, res.Errors())
}

func TestNewLogger(t *testing.T) {
	SetGlobalFlags(false, false, false, false)
	logger, err := NewLogger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	chdirProject(t)
	require.NoError(t, files.InitProjectStructure())
	SetGlobalFlags(false, false, false, true)
	t.Cleanup(func() { SetGlobalFlags(false, false, false, false) })

	logger, err = NewLogger(true)
	require.NoError(t, err)
	logger.Debug("hello")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(".cmdk/" + DebugLogFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
}
