package transfer

import (
	"os"
	"path/filepath"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
)

// ExportToFile writes c into dir under its export filename and returns the path
func ExportToFile(dir string, c *character.Character) (string, error) {
	data, err := SerializeExport(c)
	if err != nil {
		return "", err
	}
	return writeFile(filepath.Join(dir, ExportFilename(c.Name)), data)
}

// ExportAllToFile writes every character into dir as BulkExportFilename
func ExportAllToFile(dir string, chars []*character.Character) (string, error) {
	data, err := SerializeExportAll(chars)
	if err != nil {
		return "", err
	}
	return writeFile(filepath.Join(dir, BulkExportFilename), data)
}

// ImportFromFile reads path and imports it into target
func (s *Service) ImportFromFile(target Admitter, path string) ([]*character.Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sheeterr.WrapWithCode(err, sheeterr.CodeInvalidArgument, "failed to read import file").
			WithMeta("path", path)
	}
	return s.Import(target, data)
}

func writeFile(path string, data []byte) (string, error) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", sheeterr.WrapWithCode(err, sheeterr.CodeInternal, "failed to write export file").
			WithMeta("path", path)
	}
	return path, nil
}
