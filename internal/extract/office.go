package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractOffice extracts text from DOCX, ODT, and RTF bytes; cat detects the
// concrete type from the content.
func extractOffice(content []byte) (string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("extract office document: %w", err)
	}
	return text, nil
}
