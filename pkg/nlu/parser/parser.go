package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mercator-hq/modellint/pkg/nlu/ast"
	nluErrors "mercator-hq/modellint/pkg/nlu/errors"
)

// DefaultMaxFileSize is the largest model file accepted unless configured otherwise.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Parser parses language model files into typed models.
type Parser struct {
	maxFileSize int64 // Maximum file size in bytes (default: 10MB)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: DefaultMaxFileSize,
	}
}

// WithMaxFileSize sets the maximum file size limit. Values <= 0 are ignored.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	if size > 0 {
		p.maxFileSize = size
	}
	return p
}

// Parse reads and parses the model file at path.
// It returns an error if the file cannot be read, is not valid JSON,
// or has a shape that cannot be turned into a model.
func (p *Parser) Parse(path string) (*ast.Model, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &nluErrors.Error{
			Type:     nluErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{File: path},
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, &nluErrors.Error{
			Type:     nluErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			Location: ast.Location{File: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &nluErrors.Error{
			Type:     nluErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{File: path},
		}
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses model JSON from a byte slice.
// sourcePath is only used for locations in the resulting model and errors.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Model, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &nluErrors.Error{
			Type:     nluErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: ast.Location{File: sourcePath},
		}
	}

	if syntaxErr := checkJSON(data, sourcePath); syntaxErr != nil {
		return nil, syntaxErr.Attach(data)
	}

	doc := &yaml.Node{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		// Valid JSON outside the YAML subset yaml.v3 reads.
		if doc, err = tokenTree(data); err != nil {
			return nil, &nluErrors.Error{
				Type:     nluErrors.ErrorTypeSyntax,
				Message:  fmt.Sprintf("JSON parsing failed: %v", err),
				Location: ast.Location{File: sourcePath, Line: 1, Column: 1},
			}
		}
	}

	d := newDecoder(sourcePath)
	model := d.decodeModel(doc)
	if d.errors.HasErrors() {
		d.errors.Attach(data)
		return nil, d.errors
	}

	return model, nil
}

// ParseString is a convenience wrapper around ParseBytes.
func (p *Parser) ParseString(content, sourcePath string) (*ast.Model, error) {
	return p.ParseBytes([]byte(content), sourcePath)
}
