package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Record is the set of item IDs already published for one partition.
type Record struct {
	ids map[string]struct{}
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{ids: make(map[string]struct{})}
}

// Contains reports whether the ID has been published before.
func (r *Record) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Add marks an ID as published.
func (r *Record) Add(id string) {
	r.ids[id] = struct{}{}
}

// Len returns the number of recorded IDs.
func (r *Record) Len() int {
	return len(r.ids)
}

// Sorted returns all recorded IDs in lexicographic order.
func (r *Record) Sorted() []string {
	ids := make([]string, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Store reads and rewrites per-partition history files. A partition is a
// plain text file with one published ID per line; several source groups may
// share one partition.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file backing a partition.
func (s *Store) Path(partition string) string {
	return filepath.Join(s.dir, partition)
}

// Load reads a partition into memory. A missing file is an empty record,
// not an error; any other read failure is reported.
func (s *Store) Load(partition string) (*Record, error) {
	rec := NewRecord()

	f, err := os.Open(s.Path(partition))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rec, nil
		}
		return nil, fmt.Errorf("open history %s: %w", partition, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history %s: %w", partition, err)
	}

	return rec, nil
}

// Commit rewrites a partition with the record's IDs, one per line, sorted.
// The file is written to a temporary sibling, synced and renamed into place
// so a crash never leaves a partial history file behind.
func (s *Store) Commit(partition string, rec *Record) error {
	if s.dir != "" && s.dir != "." {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(s.dir, partition+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp history: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, id := range rec.Sorted() {
		if _, err := w.WriteString(id + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("write history %s: %w", partition, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush history %s: %w", partition, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync history %s: %w", partition, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp history: %w", err)
	}

	if err := os.Rename(tmpName, s.Path(partition)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename history %s: %w", partition, err)
	}

	return nil
}
