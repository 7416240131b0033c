package parser

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/harrison/advisor/internal/models"
)

// MarkdownParser parses facts files written as Markdown documents: one
// level-2 heading per endpoint ("## Endpoint 1: create-order") followed
// by a fenced yaml block holding that endpoint's facts. File-level
// settings (name, defaults) go in YAML frontmatter.
type MarkdownParser struct {
	markdown goldmark.Markdown
}

// frontmatterConfig represents the optional file-level configuration
type frontmatterConfig struct {
	Name     string               `yaml:"name"`
	Defaults models.FactsDefaults `yaml:"defaults"`
}

// NewMarkdownParser creates a new Markdown facts parser
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		markdown: goldmark.New(),
	}
}

// Parse reads Markdown content and returns the parsed FactsFile
func (p *MarkdownParser) Parse(r io.Reader) (*models.FactsFile, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	facts := &models.FactsFile{}
	content, frontmatter := extractFrontmatter(content)
	if frontmatter != nil {
		var cfg frontmatterConfig
		if err := yaml.Unmarshal(frontmatter, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		facts.Name = cfg.Name
		facts.Defaults = cfg.Defaults
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))

	endpoints, err := p.extractEndpoints(doc, content)
	if err != nil {
		return nil, err
	}
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("facts file declares no endpoints (expected '## Endpoint N: <name>' headings)")
	}

	facts.Endpoints = endpoints
	return facts, nil
}

// extractEndpoints walks the document collecting one endpoint per
// level-2 "Endpoint N:" heading; the first fenced code block after the
// heading carries the facts as YAML.
func (p *MarkdownParser) extractEndpoints(doc ast.Node, source []byte) ([]models.Endpoint, error) {
	endpointRegex := regexp.MustCompile(`^Endpoint\s+(\d+):\s+(.+)$`)

	var endpoints []models.Endpoint
	var currentName string
	var currentParsed bool

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if heading, ok := n.(*ast.Heading); ok && heading.Level == 2 {
			if currentName != "" && !currentParsed {
				return ast.WalkStop, fmt.Errorf("endpoint %q has no facts block", currentName)
			}

			title := string(headingText(heading, source))
			match := endpointRegex.FindStringSubmatch(title)
			if match == nil {
				// Not an endpoint section; skip until the next heading
				currentName = ""
				currentParsed = true
				return ast.WalkContinue, nil
			}

			currentName = strings.TrimSpace(match[2])
			currentParsed = false
			return ast.WalkContinue, nil
		}

		if block, ok := n.(*ast.FencedCodeBlock); ok && currentName != "" && !currentParsed {
			var facts models.EndpointFacts
			raw := codeBlockContent(block, source)
			if err := yaml.Unmarshal(raw, &facts); err != nil {
				return ast.WalkStop, fmt.Errorf("endpoint %q: failed to parse facts block: %w", currentName, err)
			}
			endpoints = append(endpoints, models.Endpoint{Name: currentName, Facts: facts})
			currentParsed = true
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if currentName != "" && !currentParsed {
		return nil, fmt.Errorf("endpoint %q has no facts block", currentName)
	}

	return endpoints, nil
}

// headingText returns the plain text of a heading node
func headingText(heading *ast.Heading, source []byte) []byte {
	var buf bytes.Buffer
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.Bytes()
}

// codeBlockContent returns the raw lines of a fenced code block
func codeBlockContent(block *ast.FencedCodeBlock, source []byte) []byte {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.Bytes()
}

// extractFrontmatter splits optional YAML frontmatter (delimited by ---
// lines at the top of the file) from the markdown body. Returns the
// body and the frontmatter bytes, or nil when none is present.
func extractFrontmatter(content []byte) ([]byte, []byte) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return content, nil
	}

	rest := content[bytes.IndexByte(content, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return content, nil
	}

	frontmatter := rest[:end]
	body := rest[end+len("\n---"):]
	if idx := bytes.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = nil
	}

	return body, frontmatter
}
