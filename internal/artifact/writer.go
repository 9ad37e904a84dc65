package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteToFile writes the pretty-printed artifact to path.
// Parent directories are created as needed. The content goes to a temporary
// file in the same directory first, so readers never see a partial artifact.
func (a RenderArtifact) WriteToFile(path string) error {
	data, err := a.ToJSON()
	if err != nil {
		return fmt.Errorf("cannot serialize artifact: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
