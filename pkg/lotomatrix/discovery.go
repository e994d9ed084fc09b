package lotomatrix

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// InputExtensions are the workbook extensions picked up by ListInputFiles.
var InputExtensions = []string{".xls", ".xlsx", ".xlsm"}

// lockFilePrefix marks the owner files Office leaves next to open workbooks.
const lockFilePrefix = "~$"

// ListInputFiles finds workbooks under dir, recursively, in a stable order.
func ListInputFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.WithHint(
			errors.Wrapf(ErrInputDirNotFound, "%s", dir),
			"create the directory or point --input at the folder holding the matrices")
	}

	seen := make(map[string]bool)
	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isInputFile(d.Name()) || seen[path] {
			return nil
		}
		seen[path] = true
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", dir)
	}

	sort.Strings(files)
	return files, nil
}

func isInputFile(name string) bool {
	if strings.HasPrefix(name, lockFilePrefix) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range InputExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
