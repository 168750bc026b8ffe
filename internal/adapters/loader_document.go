package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolver/internal/types"
)

// DocumentLoaderAdapter loads the repository, initial-state, and
// constraints documents from the filesystem. JSON is the canonical
// format; a ".yaml"/".yml" extension is decoded as YAML into the same
// list shapes. The string-or-list handling of repository "depends"
// entries exists only for JSON (types.RawDependsItem.UnmarshalJSON), so
// a YAML repository document with any "depends" entry fails to load.
type DocumentLoaderAdapter struct{}

// NewDocumentLoaderAdapter creates a DocumentLoaderAdapter.
func NewDocumentLoaderAdapter() *DocumentLoaderAdapter {
	return &DocumentLoaderAdapter{}
}

func (a *DocumentLoaderAdapter) LoadRepository(path string) ([]types.PackageRecord, error) {
	var records []types.PackageRecord
	if err := decodeDocument(path, &records); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to load repository document: " + path).
			WithCause(err)
	}
	return records, nil
}

func (a *DocumentLoaderAdapter) LoadInitial(path string) ([]string, error) {
	var refs []string
	if err := decodeDocument(path, &refs); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to load initial state document: " + path).
			WithCause(err)
	}
	return refs, nil
}

func (a *DocumentLoaderAdapter) LoadConstraints(path string) ([]string, error) {
	var entries []string
	if err := decodeDocument(path, &entries); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to load constraints document: " + path).
			WithCause(err)
	}
	return entries, nil
}

func decodeDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}
