package submit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/vishav1771/signac-flow/internal/scheduler"
	"github.com/vishav1771/signac-flow/internal/utils"
)

// ArtifactStore writes rendered scripts under Dir.
type ArtifactStore struct {
	Fs  afero.Fs
	Dir string
}

// NewArtifactStore creates a store rooted at dir on the OS filesystem.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{Fs: afero.NewOsFs(), Dir: dir}
}

// Path returns the artifact path of a script: script_<job name>.sh, with
// "/" in the job name replaced so every bundle gets its own file.
func (s *ArtifactStore) Path(script *scheduler.Script) string {
	return filepath.Join(s.Dir, "script_"+utils.SafeName(script.Name)+".sh")
}

// Exists reports whether the script artifact is already present.
func (s *ArtifactStore) Exists(script *scheduler.Script) bool {
	return utils.FileExists(s.Fs, s.Path(script))
}

// Save writes the script and returns its path. An existing artifact is only
// replaced when force is set.
func (s *ArtifactStore) Save(script *scheduler.Script, force bool) (string, error) {
	path := s.Path(script)
	err := utils.WriteFileExclusive(s.Fs, path, []byte(script.Text), utils.PermExec, force)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("%w: %s (use --force to overwrite)", ErrScriptExists, path)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
