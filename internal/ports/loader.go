package ports

import "depsolver/internal/types"

// DocumentLoaderPort reads the three input documents from disk.
// Implementations decide the document format (JSON, YAML) from the
// file extension.
type DocumentLoaderPort interface {
	LoadRepository(path string) ([]types.PackageRecord, error)
	LoadInitial(path string) ([]string, error)
	LoadConstraints(path string) ([]string, error)
}
