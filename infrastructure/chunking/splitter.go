// Package chunking provides fixed-size character splitting of plain text
// documents into chunks for embedding, plus a text file loader. It feeds the
// ingestion surface; the core collection and search services accept chunks
// from any source.
package chunking

import (
	"fmt"
	"strings"
)

// SplitParams configures the splitter. Size and Overlap are measured in
// runes.
type SplitParams struct {
	Size    int
	Overlap int
}

// DefaultSplitParams returns the defaults used for prose documents.
func DefaultSplitParams() SplitParams {
	return SplitParams{Size: 2000, Overlap: 0}
}

// SplitText splits content into chunks of at most Size runes. Paragraphs
// (separated by blank lines) are kept together when they fit; a paragraph
// longer than Size is hard-split on rune boundaries. When Overlap is
// non-zero, the trailing Overlap runes of each emitted chunk are carried
// into the next one.
func SplitText(content string, params SplitParams) ([]string, error) {
	if params.Size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", params.Size)
	}
	if params.Overlap >= params.Size {
		return nil, fmt.Errorf("overlap (%d) must be less than size (%d)", params.Overlap, params.Size)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	var chunks []string
	var acc []rune

	flush := func() {
		text := strings.TrimSpace(string(acc))
		if text != "" {
			chunks = append(chunks, text)
		}
		if params.Overlap > 0 && len(acc) > params.Overlap {
			acc = acc[len(acc)-params.Overlap:]
		} else {
			acc = nil
		}
	}

	for _, para := range splitParagraphs(content) {
		runes := []rune(para)

		if len(runes) > params.Size {
			if len(acc) > 0 {
				flush()
			}
			// Hard-split the oversized paragraph.
			for start := 0; start < len(runes); start += params.Size - params.Overlap {
				end := min(start+params.Size, len(runes))
				chunks = append(chunks, strings.TrimSpace(string(runes[start:end])))
				if end == len(runes) {
					break
				}
			}
			continue
		}

		if len(acc) > 0 && len(acc)+len(runes)+2 > params.Size {
			flush()
		}
		if len(acc) > 0 {
			acc = append(acc, '\n', '\n')
		}
		acc = append(acc, runes...)
	}

	if len(acc) > 0 {
		text := strings.TrimSpace(string(acc))
		if text != "" {
			chunks = append(chunks, text)
		}
	}

	return chunks, nil
}

// splitParagraphs splits content on blank lines, dropping empty segments.
func splitParagraphs(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	parts := strings.Split(normalized, "\n\n")

	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
