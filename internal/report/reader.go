package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrMalformed is returned when a report does not follow the entry layout.
var ErrMalformed = errors.New("report: malformed")

// Parse reads a report back into its entries.
//
// Content is recovered exactly as long as no content line starts with a
// fence; such a line ends the block early and Parse reports ErrMalformed.
func Parse(r io.Reader) ([]Entry, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	entries := make([]Entry, 0)
	var header string
	var haveHeader bool

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Paragraph:
			if haveHeader {
				return nil, fmt.Errorf("%w: entry %q has no content block", ErrMalformed, header)
			}
			line := lastLine(node, source)
			if !bytes.HasSuffix(line, []byte(":")) {
				return nil, fmt.Errorf("%w: expected path header, got %q", ErrMalformed, line)
			}
			header = string(line[:len(line)-1])
			haveHeader = true

		case *ast.FencedCodeBlock:
			if !haveHeader {
				return nil, fmt.Errorf("%w: content block without path header", ErrMalformed)
			}
			entries = append(entries, Entry{Path: header, Content: blockContent(node, source)})
			haveHeader = false

		default:
			return nil, fmt.Errorf("%w: unexpected %s block", ErrMalformed, n.Kind())
		}
	}

	if haveHeader {
		return nil, fmt.Errorf("%w: entry %q has no content block", ErrMalformed, header)
	}

	return entries, nil
}

func lastLine(n ast.Node, source []byte) []byte {
	lines := n.Lines()
	if lines.Len() == 0 {
		return nil
	}
	seg := lines.At(lines.Len() - 1)
	return bytes.TrimRight(seg.Value(source), " \t\r\n")
}

// blockContent joins the block's lines and drops the newline the writer adds
// before the closing fence.
func blockContent(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
