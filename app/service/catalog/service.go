package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"oscesim/app/config"
	"oscesim/app/service/extract"
	"oscesim/app/util/apperr"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

// Service lists and reads predefined cases. The catalog is a directory of
// collections, each collection a directory of case documents.
type Service struct {
	cfg *config.Config
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg: do.MustInvoke[*config.Config](di),
	}, nil
}

// List enumerates collections and their case documents. Only files with a
// supported extension are reported.
func (s *Service) List() (map[string][]string, error) {
	entries, err := os.ReadDir(s.cfg.Server.CasesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: cases dir: %v", apperr.ErrCaseNotFound, err)
	}

	result := make(map[string][]string)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		items, err := os.ReadDir(filepath.Join(s.cfg.Server.CasesDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read collection %q: %w", entry.Name(), err)
		}

		files := make([]string, 0, len(items))
		for _, item := range items {
			if item.IsDir() {
				continue
			}

			if extract.TypeFromName(item.Name()) == "" {
				continue
			}

			files = append(files, item.Name())
		}

		result[entry.Name()] = pie.Sort(files)
	}

	return result, nil
}

// Read loads one case document and reports its declared type.
func (s *Service) Read(collection, item string) ([]byte, string, error) {
	if !validName(collection) || !validName(item) {
		return nil, "", fmt.Errorf("%w: bad collection or case name", apperr.ErrInvalidInput)
	}

	declaredType := extract.TypeFromName(item)
	if declaredType == "" {
		return nil, "", fmt.Errorf("%w: unsupported case file %q", apperr.ErrInvalidInput, item)
	}

	data, err := os.ReadFile(filepath.Join(s.cfg.Server.CasesDir, collection, item))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s/%s", apperr.ErrCaseNotFound, collection, item)
		}

		return nil, "", fmt.Errorf("failed to read case file: %w", err)
	}

	return data, declaredType, nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`)
}
