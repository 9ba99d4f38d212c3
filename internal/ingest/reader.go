package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// LoadSubreddits reads the watch list from a one-column CSV file with a
// header row. Rows that do not look like a subreddit name are dropped
// fail-soft; the collector re-verifies everything against the API anyway.
func LoadSubreddits(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var subs []string
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		line++
		if line == 1 {
			continue // Skip header
		}
		if len(record) == 0 {
			continue
		}

		// Validation (Fail-Soft)
		sub := strings.TrimSpace(record[0])
		if !subNameRegex.MatchString(sub) {
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
