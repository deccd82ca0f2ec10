package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// LoadRecipients reads the recipient list at path.
func LoadRecipients(path string, logger *zap.Logger) ([]models.Recipient, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, models.NewConfigError("recipients_file", err.Error())
	}
	defer f.Close()

	return ReadRecipients(f, logger)
}

// ReadRecipients parses a newline separated list of email addresses.
//
// Trailing whitespace is removed and the text is NFC normalised. Empty
// lines, repeated addresses and addresses whose local part cannot be used as
// a folder name are skipped; each skipped line yields a warning. Two
// addresses that share a local part would write into the same folder, so the
// later one is skipped as well.
func ReadRecipients(r io.Reader, logger *zap.Logger) ([]models.Recipient, []string, error) {
	var (
		recipients []models.Recipient
		warnings   []string
		emails     = make(map[string]int)
		folders    = make(map[string]int)
	)

	warn := func(line int, msg string) {
		w := fmt.Sprintf("line %d: %s", line, msg)
		warnings = append(warnings, w)
		logger.Warn("Skipping recipient", zap.Int("line", line), zap.String("reason", msg))
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		email := norm.NFC.String(strings.TrimRightFunc(text, unicode.IsSpace))

		if strings.TrimSpace(email) == "" {
			warn(line, "empty line")
			continue
		}
		if first, ok := emails[email]; ok {
			warn(line, fmt.Sprintf("duplicate of line %d", first))
			continue
		}

		userID := utils.UserID(email)
		if !utils.IsValidFolderName(userID) {
			warn(line, fmt.Sprintf("%q is not a usable folder name", userID))
			continue
		}
		if first, ok := folders[userID]; ok {
			warn(line, fmt.Sprintf("folder %q already used by line %d", userID, first))
			continue
		}

		emails[email] = line
		folders[userID] = line
		recipients = append(recipients, models.Recipient{Email: email, UserID: userID, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("failed to read recipients: %w", err)
	}

	return recipients, warnings, nil
}
