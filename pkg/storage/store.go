// Package storage keeps run artifacts in a reports directory. File names carry a minute
// resolution UTC timestamp so lexicographic order equals chronological order.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/umputun/ainews/pkg/domain"
)

// TimestampLayout is sortable and safe for file names
const TimestampLayout = "2006-01-02T15-04"

// artifact name prefixes and suffixes
const (
	RawPrefix      = "raw-news-"
	AnalyzedPrefix = "analyzed-news-"
	ReportPrefix   = "ai-news-report-"
	jsonSuffix     = ".json"
	htmlSuffix     = ".html"
)

// ErrNotFound is returned when no artifact of the requested kind exists
var ErrNotFound = errors.New("artifact not found")

// Store writes and reads artifacts in a single directory
type Store struct {
	dir string
}

// NewStore creates a store for dir, the directory is created on first write
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the reports directory
func (s *Store) Dir() string { return s.dir }

// Timestamp formats t for artifact names
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// SaveRaw writes fetched items as json, returns the file path
func (s *Store) SaveRaw(items []domain.RawNewsItem, ts string) (string, error) {
	if items == nil {
		items = []domain.RawNewsItem{}
	}
	return s.writeJSON(RawPrefix+ts+jsonSuffix, items)
}

// SaveAnalyzed writes scored topics as json, returns the file path
func (s *Store) SaveAnalyzed(topics []domain.ScoredTopic, ts string) (string, error) {
	if topics == nil {
		topics = []domain.ScoredTopic{}
	}
	return s.writeJSON(AnalyzedPrefix+ts+jsonSuffix, topics)
}

// SaveReport writes the rendered html report, returns the file path
func (s *Store) SaveReport(html, ts string) (string, error) {
	return s.write(ReportPrefix+ts+htmlSuffix, []byte(html))
}

// LatestAnalyzed returns the path of the most recent analyzed artifact
func (s *Store) LatestAnalyzed() (string, error) {
	return s.latest(AnalyzedPrefix, jsonSuffix)
}

// LatestReport returns the path of the most recent html report
func (s *Store) LatestReport() (string, error) {
	return s.latest(ReportPrefix, htmlSuffix)
}

// LoadAnalyzed reads scored topics from an analyzed artifact
func (s *Store) LoadAnalyzed(path string) ([]domain.ScoredTopic, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the store or the operator
	if err != nil {
		return nil, fmt.Errorf("read analyzed file: %w", err)
	}
	var topics []domain.ScoredTopic
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil, fmt.Errorf("parse analyzed file %s: %w", path, err)
	}
	return topics, nil
}

// Open returns the path of a named artifact. Only plain file names with a known
// prefix are accepted.
func (s *Store) Open(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}
	if !strings.HasPrefix(name, RawPrefix) && !strings.HasPrefix(name, AnalyzedPrefix) &&
		!strings.HasPrefix(name, ReportPrefix) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}

// Latest picks the lexicographically greatest name with the given prefix and suffix
func Latest(names []string, prefix, suffix string) (string, bool) {
	var matched []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) && strings.HasSuffix(n, suffix) {
			matched = append(matched, n)
		}
	}
	if len(matched) == 0 {
		return "", false
	}
	sort.Strings(matched)
	return matched[len(matched)-1], true
}

func (s *Store) latest(prefix, suffix string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read reports dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	name, ok := Latest(names, prefix, suffix)
	if !ok {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, name), nil
}

func (s *Store) writeJSON(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	return s.write(name, data)
}

// write puts data into a temp file in the same directory and renames it into place
func (s *Store) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after successful rename

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // reports are meant to be readable
		return "", fmt.Errorf("chmod %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	if err = os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename %s: %w", name, err)
	}
	return path, nil
}
