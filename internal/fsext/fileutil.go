package fsext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/csync"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/home"
)

type FileInfo struct {
	Path    string
	ModTime time.Time
}

// ignoredDirs are directories that never hold log files worth tailing.
var ignoredDirs = map[string]bool{
	".devops-dash":     true,
	"node_modules":     true,
	"vendor":           true,
	"dist":             true,
	"target":           true,
	".git":             true,
	".idea":            true,
	".vscode":          true,
	"__pycache__":      true,
	"bower_components": true,
	"jspm_packages":    true,
}

// SkipHidden reports whether path is hidden or sits inside a directory
// excluded from source discovery.
func SkipHidden(path string) bool {
	base := filepath.Base(path)
	if base != "." && strings.HasPrefix(base, ".") {
		return true
	}

	parts := strings.SplitSeq(path, string(os.PathSeparator))
	for part := range parts {
		if ignoredDirs[part] {
			return true
		}
	}
	return false
}

// GlobWithDoubleStar walks searchPath matching pattern (doublestar
// syntax, ** spans directories) against paths relative to searchPath.
// Matches come back newest first; a positive limit truncates the result
// and the second return reports whether truncation happened.
func GlobWithDoubleStar(pattern, searchPath string, limit int) ([]string, bool, error) {
	// Windows configs may spell patterns with backslashes.
	pattern = filepath.ToSlash(pattern)

	found := csync.NewSlice[FileInfo]()
	conf := fastwalk.Config{
		Follow:  true,
		ToSlash: fastwalk.DefaultToSlash(),
		Sort:    fastwalk.SortFilesFirst,
	}
	err := fastwalk.Walk(&conf, searchPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip entries we cannot access
		}

		if SkipHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(searchPath, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		matched, err := doublestar.Match(pattern, relPath)
		if err != nil || !matched {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		found.Append(FileInfo{Path: path, ModTime: info.ModTime()})
		// Gather extra entries so the newest ones survive the sort.
		if limit > 0 && found.Len() >= limit*2 {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return nil, false, fmt.Errorf("fastwalk error: %w", err)
	}

	matches := slices.SortedFunc(found.Seq(), func(a, b FileInfo) int {
		return b.ModTime.Compare(a.ModTime)
	})
	matches, truncated := truncate(matches, limit)

	results := make([]string, len(matches))
	for i, m := range matches {
		results[i] = m.Path
	}
	return results, truncated || errors.Is(err, filepath.SkipAll), nil
}

// PrettyPath shortens path by replacing the home directory with ~.
func PrettyPath(path string) string {
	return home.Short(path)
}

// DirTrim compresses pwd to at most lim trailing components, the rest
// reduced to their first letter, anchored at ~.
func DirTrim(pwd string, lim int) string {
	var (
		out string
		sep = string(filepath.Separator)
	)
	dirs := strings.Split(pwd, sep)
	if lim > len(dirs)-1 || lim <= 0 {
		return pwd
	}
	for i := len(dirs) - 1; i > 0; i-- {
		out = sep + out
		if i == len(dirs)-1 {
			out = dirs[i]
		} else if i >= len(dirs)-lim {
			out = string(dirs[i][0]) + out
		} else {
			out = "..." + out
			break
		}
	}
	out = filepath.Join("~", out)
	return out
}

// ToUnixLineEndings converts CRLF line endings to LF. The second return
// reports whether a conversion happened.
func ToUnixLineEndings(content string) (string, bool) {
	if strings.Contains(content, "\r\n") {
		return strings.ReplaceAll(content, "\r\n", "\n"), true
	}
	return content, false
}

func truncate[T any](input []T, limit int) ([]T, bool) {
	if limit > 0 && len(input) > limit {
		return input[:limit], true
	}
	return input, false
}
