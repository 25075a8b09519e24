package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// DefaultSkipDirs are directory names never descended into.
var DefaultSkipDirs = []string{"node_modules", ".git"}

type FileInfo struct {
	Path string
	Size int64
}

// Scanner collects the files below a root directory whose extension is one
// of the configured ones.
type Scanner struct {
	rootDir    string
	extensions []string
	skipDirs   map[string]bool
}

func New(rootDir string, extensions ...string) *Scanner {
	s := &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
		skipDirs:   make(map[string]bool),
	}
	for _, dir := range DefaultSkipDirs {
		s.skipDirs[dir] = true
	}
	return s
}

// SkipDirs replaces the directory names that are not descended into.
func (s *Scanner) SkipDirs(names ...string) *Scanner {
	s.skipDirs = make(map[string]bool, len(names))
	for _, name := range names {
		s.skipDirs[name] = true
	}
	return s
}

// Scan returns the matching files sorted by path.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.rootDir && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.IsTarget(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// Paths is Scan without the sizes.
func (s *Scanner) Paths() ([]string, error) {
	files, err := s.Scan()
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths, err
}

// IsTarget reports whether path has one of the scanned extensions.
func (s *Scanner) IsTarget(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
