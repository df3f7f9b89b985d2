package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrRecipientsMissing the recipients file of the region does not exist
var ErrRecipientsMissing = errors.New("recipients file missing")

// RecipientsFile Correo_R1.md for region R1, Correo_R2.md for anything else.
func RecipientsFile(dir, region string) string {
	name := "Correo_R2.md"
	if strings.TrimSpace(region) == "R1" {
		name = "Correo_R1.md"
	}
	return filepath.Join(dir, name)
}

// LoadRecipients markdown recipient list of the region.
func LoadRecipients(dir, region string) (string, error) {
	path := RecipientsFile(dir, region)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrRecipientsMissing, path)
		}
		return "", fmt.Errorf("read recipients %s: %w", path, err)
	}
	return string(data), nil
}
