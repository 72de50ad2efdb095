// Package cli provides result printing for the Terasu command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okibi/terasu/internal/models"
	"github.com/okibi/terasu/pkg/utils"
)

// maxSnippetLine caps snippet text in terminal output; JSON output is never
// truncated.
const maxSnippetLine = 200

// OutputFormat is the format for search result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// JSON output preserves the snippet key order (text, score, pages, regions,
// highlights).
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeText(w, response)
		return nil
	}
}

func writeText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results for %q in %dms\n\n", response.Total, response.Query, response.QueryTime)
	if response.Suggestion != "" {
		fmt.Fprintf(w, "Did you mean: %q?\n\n", response.Suggestion)
	}
	for _, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.4f\n", result.Rank, result.Score)
		fmt.Fprintf(w, "ID: %s\n", result.ID)
		if result.Title != "" {
			fmt.Fprintf(w, "Title: %s\n", result.Title)
		}
		if result.Path != "" {
			fmt.Fprintf(w, "Path: %s\n", result.Path)
		}
		for _, snip := range result.Snippets {
			if text, ok := snip.Get("text"); ok {
				fmt.Fprintf(w, "  ... %s\n", utils.Truncate(fmt.Sprintf("%v", text), maxSnippetLine))
			}
		}
		fmt.Fprintln(w)
	}
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}
