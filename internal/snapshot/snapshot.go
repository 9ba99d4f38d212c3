// Package snapshot persists collected records as delimited tabular files and
// reconciles new batches with previously saved data without duplication.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

// ErrColumnMismatch means an existing snapshot file has a header that does
// not match the record type it was loaded as.
var ErrColumnMismatch = errors.New("snapshot columns do not match record fields")

// Record is what a snapshot stores: Key is the identity that merge
// deduplicates on, SortKey orders the merged output (cosmetic only).
type Record interface {
	Key() string
	SortKey() string
}

// Merge concatenates prior and fresh records, drops duplicate keys keeping
// the first occurrence, and stable-sorts by SortKey. Merging records whose
// keys are already present is a no-op, which makes Merge idempotent.
func Merge[T Record](prior, fresh []T) []T {
	seen := make(map[string]struct{}, len(prior)+len(fresh))
	merged := make([]T, 0, len(prior)+len(fresh))
	for _, batch := range [][]T{prior, fresh} {
		for _, rec := range batch {
			if _, dup := seen[rec.Key()]; dup {
				continue
			}
			seen[rec.Key()] = struct{}{}
			merged = append(merged, rec)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SortKey() < merged[j].SortKey()
	})
	return merged
}

// Write saves records to path as UTF-8 CSV with a header row, overwriting
// any existing file.
func Write[T Record](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(&records, f); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return f.Close()
}

// Read loads a snapshot file, verifying its header against the record type.
func Read[T Record](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := verifyHeader[T](path, data); err != nil {
		return nil, err
	}

	var records []T
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return records, nil
}

// Update merges fresh records into the snapshot at path. A missing file
// counts as an empty prior snapshot (first collection). With save set, the
// merged result overwrites the file in place.
func Update[T Record](path string, fresh []T, save bool) ([]T, error) {
	prior, err := Read[T](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	merged := Merge(prior, fresh)
	if save {
		if err := Write(path, merged); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// verifyHeader compares the file's first line against the header gocsv would
// emit for T. Both data sets must share the same columns before a merge.
func verifyHeader[T Record](path string, data []byte) error {
	want, err := gocsv.MarshalString(&[]T{})
	if err != nil {
		return err
	}
	want = strings.TrimRight(want, "\r\n")

	have := string(data)
	if i := strings.IndexAny(have, "\r\n"); i >= 0 {
		have = have[:i]
	}
	have = strings.TrimPrefix(have, "\uFEFF")

	if have != want {
		return fmt.Errorf("%s: %w (have %q, want %q)", path, ErrColumnMismatch, have, want)
	}
	return nil
}
