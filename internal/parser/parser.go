package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/harrison/advisor/internal/models"
)

// Format represents the format of a facts file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatMarkdown represents a Markdown (.md, .markdown) facts file
	FormatMarkdown
	// FormatYAML represents a YAML (.yaml, .yml) facts file
	FormatYAML
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Parser is the interface that all facts parsers must implement
type Parser interface {
	// Parse reads from an io.Reader and returns a parsed FactsFile
	Parse(r io.Reader) (*models.FactsFile, error)
}

// DetectFormat automatically detects the facts format based on file extension
//   - .md, .markdown -> FormatMarkdown
//   - .yaml, .yml -> FormatYAML
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// NewParser creates a new parser instance for the specified format
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownParser(), nil
	case FormatYAML:
		return NewYAMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ParseFile auto-detects the format of a facts file, opens it, parses it,
// normalizes every endpoint, and stores the absolute source path in
// FilePath. This is the recommended way to load facts files from disk.
func ParseFile(path string) (*models.FactsFile, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unknown file format: %s (supported: .md, .markdown, .yaml, .yml)", path)
	}

	parser, err := NewParser(format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	facts, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse facts file: %w", err)
	}

	for i := range facts.Endpoints {
		facts.Endpoints[i].Facts.Normalize()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	facts.FilePath = absPath

	if facts.Name == "" {
		facts.Name = strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	}

	return facts, nil
}

// FilterFactsFiles accepts an array of file and/or directory paths and
// returns a deduplicated, sorted list of absolute paths matching the
// facts-* pattern.
//
// Pattern matching rules:
//   - Files MUST start with "facts-" prefix
//   - Files MUST have extension: .md, .markdown, .yaml, or .yml
//   - Examples: facts-orders.yaml, facts-catalog.md
//
// Directories are scanned recursively.
func FilterFactsFiles(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths provided")
	}

	factsPattern := regexp.MustCompile(`^facts-.*\.(md|markdown|yaml|yml)$`)
	factsFiles := make(map[string]bool)

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path %q does not exist", absPath)
			}
			return nil, fmt.Errorf("failed to access path %q: %w", absPath, err)
		}

		if info.IsDir() {
			err := filepath.Walk(absPath, func(filePath string, fileInfo os.FileInfo, walkErr error) error {
				if walkErr != nil {
					return walkErr
				}
				if fileInfo.IsDir() {
					return nil
				}
				if factsPattern.MatchString(filepath.Base(filePath)) {
					abs, err := filepath.Abs(filePath)
					if err != nil {
						return err
					}
					factsFiles[abs] = true
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to scan directory %q: %w", absPath, err)
			}
		} else {
			if factsPattern.MatchString(filepath.Base(absPath)) {
				factsFiles[absPath] = true
			}
		}
	}

	if len(factsFiles) == 0 {
		return nil, fmt.Errorf("no facts files found matching pattern facts-*.{md,markdown,yaml,yml}")
	}

	result := make([]string, 0, len(factsFiles))
	for path := range factsFiles {
		result = append(result, path)
	}
	sort.Strings(result)

	return result, nil
}
