package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phambaophuc/pdf-watermark/internal/config"
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "pdf")
	require.NoError(t, os.Mkdir(src, 0o755))
	emails := filepath.Join(root, "emails.txt")
	require.NoError(t, os.WriteFile(emails, []byte("alice@example.com\n"), 0o644))

	return &config.Config{
		Paths: config.PathsConfig{
			SourceDir:      src,
			OutputDir:      filepath.Join(root, "result"),
			RecipientsFile: emails,
		},
		Render: config.RenderConfig{
			Supersample:    1,
			JPEGQuality:    85,
			FontFamily:     "go",
			FontSize:       40,
			MismatchPolicy: "skip",
		},
		Log:     config.LogConfig{Level: "info", Format: "json"},
		Workers: 1,
	}
}

func TestSetup_OK(t *testing.T) {
	svc, recipients, err := setup(testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NotNil(t, svc)
	require.Len(t, recipients, 1)
	assert.Equal(t, "alice", recipients[0].UserID)
}

func TestSetup_UnknownFontIsConfigError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.FontFamily = "calibri"
	_, _, err := setup(cfg, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestSetup_NoRecipients(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Paths.RecipientsFile, []byte("\n\n"), 0o644))
	_, _, err := setup(cfg, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestArgs_Apply(t *testing.T) {
	cfg := testConfig(t)
	args := Args{Workers: 7, Mismatch: "abort", FontDirs: []string{"/fonts"}}
	args.apply(cfg)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, "abort", cfg.Render.MismatchPolicy)
	assert.Equal(t, []string{"/fonts"}, cfg.Render.FontDirs)
	assert.Equal(t, 1, cfg.Render.Supersample, "unset flags keep the configured value")
}

func TestPrintSummary(t *testing.T) {
	results := []queue.Result[*models.RecipientResult]{
		{
			Name:     "alice@example.com",
			Status:   models.StatusCompleted,
			Duration: 1500 * time.Millisecond,
			Value: &models.RecipientResult{Documents: []models.DocumentResult{
				{Source: "a.pdf", Pages: 3, Rendered: 1, Reused: 2, Warnings: []string{"w"}},
				{Source: "b.pdf", Pages: 1, Rendered: 1},
			}},
		},
		{Name: "bob@example.com", Status: models.StatusFailed, Err: errors.New("x")},
	}

	var buf bytes.Buffer
	printSummary(&buf, results)
	out := buf.String()
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "documents 2 ok / 0 failed, images 2 rendered / 2 reused, 1 warnings, 1.5s")
	assert.Contains(t, out, "failed    bob@example.com")
}
