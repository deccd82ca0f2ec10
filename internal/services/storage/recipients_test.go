package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReadRecipients(t *testing.T) {
	input := strings.Join([]string{
		"\ufeffalice@example.com  ",
		"",
		"bob@example.com\r",
		"   ",
		"alice@example.com",
		"../evil@example.com",
		"alice@other.org",
		"carol@example.com",
	}, "\n")

	got, warnings, err := ReadRecipients(strings.NewReader(input), zaptest.NewLogger(t))
	require.NoError(t, err)

	want := []models.Recipient{
		{Email: "alice@example.com", UserID: "alice", Line: 1},
		{Email: "bob@example.com", UserID: "bob", Line: 3},
		{Email: "carol@example.com", UserID: "carol", Line: 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("recipients mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, warnings, 5)
	assert.Contains(t, warnings[0], "line 2: empty line")
	assert.Contains(t, warnings[1], "line 4: empty line")
	assert.Contains(t, warnings[2], "duplicate of line 1")
	assert.Contains(t, warnings[3], "line 6")
	assert.Contains(t, warnings[4], `folder "alice" already used by line 1`)
}

func TestReadRecipients_NormalisesUnicode(t *testing.T) {
	// "e" followed by a combining acute accent and the precomposed "é"
	input := "rene\u0301@example.com\nren\u00e9@example.com\n"
	got, warnings, err := ReadRecipients(strings.NewReader(input), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ren\u00e9", got[0].UserID)
	assert.Len(t, warnings, 1)
}

func TestReadRecipients_OnlyEmptyLines(t *testing.T) {
	got, warnings, err := ReadRecipients(strings.NewReader("\n\n"), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, warnings, 2)
}

func TestLoadRecipients_Missing(t *testing.T) {
	_, _, err := LoadRecipients(filepath.Join(t.TempDir(), "emails.txt"), zaptest.NewLogger(t))
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestLoadRecipients_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.txt")
	require.NoError(t, os.WriteFile(path, []byte("dave@example.com\n"), 0o644))

	got, _, err := LoadRecipients(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dave", got[0].UserID)
}
