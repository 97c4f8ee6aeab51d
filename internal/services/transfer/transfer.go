// Package transfer moves characters in and out of the store as JSON files.
// Imports are all-or-nothing: one bad record rejects the whole batch.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
	"github.com/KirkDiggler/essence-sheet/internal/uuid"
)

// BulkExportFilename is the file an export of every character is written to
const BulkExportFilename = "all_characters.json"

const exportIndent = "  "

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Admitter receives validated characters
type Admitter interface {
	BulkLoad(chars []*character.Character) ([]*character.Character, error)
}

// Service validates imports and serializes exports
type Service struct {
	uuidGenerator uuid.Generator
	now           func() time.Time
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	UUIDGenerator uuid.Generator   // Defaults to random UUIDs
	Now           func() time.Time // Stamps imports that carry no timestamps
}

// NewService creates a transfer service
func NewService(cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	svc := &Service{
		uuidGenerator: cfg.UUIDGenerator,
		now:           cfg.Now,
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.now == nil {
		svc.now = func() time.Time { return time.Now().UTC() }
	}
	return svc
}

// ValidateImport parses one character object or an array of them. Each
// record is decoded over the system defaults, so omitted fields keep their
// default values, and unknown fields are rejected. Every admitted character
// gets a fresh id. The first invalid record fails the whole call with a
// CodeValidation error carrying its index.
func (s *Service) ValidateImport(raw []byte) ([]*character.Character, error) {
	records, err := splitRecords(raw)
	if err != nil {
		return nil, err
	}

	result := make([]*character.Character, 0, len(records))
	for i, record := range records {
		char, err := s.decodeRecord(record)
		if err != nil {
			return nil, sheeterr.Wrapf(err, "import record %d rejected", i).WithMeta("index", i)
		}
		result = append(result, char)
	}
	return result, nil
}

// Import validates raw and hands the batch to target
func (s *Service) Import(target Admitter, raw []byte) ([]*character.Character, error) {
	chars, err := s.ValidateImport(raw)
	if err != nil {
		log.Printf("Transfer: Import rejected: %v", err)
		return nil, err
	}

	admitted, err := target.BulkLoad(chars)
	if err != nil {
		return nil, err
	}
	log.Printf("Transfer: Imported %d characters", len(admitted))
	return admitted, nil
}

func splitRecords(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, sheeterr.Validation("import is empty")
	}

	switch trimmed[0] {
	case '{':
		return []json.RawMessage{trimmed}, nil
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, sheeterr.WrapWithCode(err, sheeterr.CodeValidation, "import is not valid JSON")
		}
		if len(records) == 0 {
			return nil, sheeterr.Validation("import contains no characters")
		}
		return records, nil
	}
	return nil, sheeterr.Validation("import must be a character object or an array of them")
}

func (s *Service) decodeRecord(record json.RawMessage) (*character.Character, error) {
	if t := bytes.TrimSpace(record); len(t) == 0 || t[0] != '{' {
		return nil, sheeterr.Validation("record must be a JSON object")
	}

	char := character.Defaults()
	dec := json.NewDecoder(bytes.NewReader(record))
	dec.DisallowUnknownFields()
	if err := dec.Decode(char); err != nil {
		return nil, sheeterr.WrapWithCode(err, sheeterr.CodeValidation, describeDecodeError(err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, sheeterr.Validation("unexpected data after character object")
	}

	char.Normalize()
	char.Name = strings.TrimSpace(char.Name)
	char.Reidentify(s.uuidGenerator.New)

	now := s.now()
	if char.CreatedAt.IsZero() {
		char.CreatedAt = now
	}
	if char.UpdatedAt.IsZero() {
		char.UpdatedAt = char.CreatedAt
	}

	if err := char.Validate(); err != nil {
		return nil, err
	}
	return char, nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset)
	}
	return "invalid character data"
}

// SerializeExport renders one character as indented JSON with a trailing newline
func SerializeExport(c *character.Character) ([]byte, error) {
	if c == nil {
		return nil, sheeterr.InvalidArgument("character cannot be nil")
	}
	return marshal(c)
}

// SerializeExportAll renders characters as an indented JSON array
func SerializeExportAll(chars []*character.Character) ([]byte, error) {
	if chars == nil {
		chars = []*character.Character{}
	}
	return marshal(chars)
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", exportIndent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportFilename derives the export file name from a character name
func ExportFilename(name string) string {
	return strings.ToLower(nonAlphanumeric.ReplaceAllString(name, "_")) + "_character.json"
}
