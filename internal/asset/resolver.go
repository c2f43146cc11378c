package asset

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/cockroachdb/errors"
)

//go:embed bundled/*
var bundled embed.FS

// BundledPrefix marks a reference to an asset shipped with the binary
const BundledPrefix = "bundled:"

// Resolver loads named assets from an optional override directory and falls
// back to the embedded set when the file is missing there.
type Resolver struct {
	dir string
}

// NewResolver creates a Resolver. An empty dir uses embedded assets only.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// Load returns the bytes of the named asset
func (r *Resolver) Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, BundledPrefix)
	if err := validateName(name); err != nil {
		return nil, err
	}

	if r.dir != "" {
		data, err := os.ReadFile(filepath.Join(r.dir, name)) // #nosec G304 -- name validated above
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, ierr.WithError(err).
				WithHintf("Failed to read asset %q", name).
				Mark(ierr.ErrSystem)
		}
	}

	data, err := bundled.ReadFile("bundled/" + name)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Asset %q does not exist", name).
			Mark(ierr.ErrNotFound)
	}
	return data, nil
}

// validateName rejects empty names, path separators and hidden files
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		return ierr.NewErrorf("invalid asset name %q", name).
			WithHint("Asset names must be plain file names").
			Mark(ierr.ErrValidation)
	}
	return nil
}
