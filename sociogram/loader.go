// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrNotAnObject     = errors.New("record is not a JSON object")
)

// RecordExt is the extension of participant files.
const RecordExt = ".json"

// Loader reads a directory tree of participant records.
type Loader struct {
	normalizer *Normalizer
}

func NewLoader(n *Normalizer) *Loader {
	if n == nil {
		n = defaultNormalizer
	}
	return &Loader{normalizer: n}
}

// Load walks root and indexes every record file below it. Unreadable or
// malformed files are skipped with a warning; a missing root yields an
// empty index. The returned names are sorted.
func (l *Loader) Load(root string) (*Index, []string) {
	var records []*Record
	position := make(map[string]int)
	var totalBytes uint64

	for _, path := range recordFiles(root) {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping record", "path", path, "error", err)
			continue
		}
		rec, err := l.parse(path, data)
		if err != nil {
			slog.Warn("skipping record", "path", path, "error", err)
			continue
		}
		totalBytes += uint64(len(data))

		if i, ok := position[rec.DisplayName]; ok {
			slog.Warn("duplicate display name, later file wins",
				"name", rec.DisplayName,
				"kept", path,
				"dropped", records[i].Path,
			)
			records[i] = rec
			continue
		}
		position[rec.DisplayName] = len(records)
		records = append(records, rec)
	}

	idx := newIndex(l.normalizer, records)
	slog.Info("records loaded",
		"root", root,
		"participants", idx.Len(),
		"size", humanize.Bytes(totalBytes),
	)
	return idx, idx.Names()
}

// recordFiles lists candidate files in lexical walk order.
func recordFiles(root string) []string {
	if root == "" {
		return nil
	}
	if _, err := os.Stat(root); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("data directory unavailable", "root", root, "error", err)
		}
		return nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), RecordExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		slog.Warn("walk data directory", "root", root, "error", err)
	}
	return files
}

func (l *Loader) parse(path string, data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedRecord
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrNotAnObject
	}

	// A missing, non-string or blank Nombre all read as UnknownName. A blank
	// name would otherwise give an empty display name and canonical key.
	rawName := UnknownName
	if v := doc.Get(FieldName); v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
		rawName = v.String()
	}
	name := strings.TrimSpace(rawName)

	var cohort string
	if v := doc.Get(FieldCohort); v.Exists() && v.Type != gjson.Null {
		cohort = strings.TrimSpace(v.String())
	}

	display := name
	if cohort != "" {
		display = fmt.Sprintf("%s (%s)", name, cohort)
	}

	var prefs []Preference
	if v := doc.Get(FieldPreferences); v.IsObject() {
		// ForEach walks keys in file order and keeps duplicate keys.
		v.ForEach(func(target, value gjson.Result) bool {
			rank, ok := parseRank(value)
			if !ok {
				slog.Warn("preference has no numeric rank",
					"path", path,
					"target", target.String(),
					"rank", value.Raw,
				)
			}
			prefs = append(prefs, Preference{Target: target.String(), Rank: rank, Unranked: !ok})
			return true
		})
	}

	return &Record{
		DisplayName: display,
		RawName:     rawName,
		Key:         l.normalizer.Key(name),
		Cohort:      cohort,
		Path:        path,
		Preferences: prefs,
		Raw:         append([]byte(nil), data...),
	}, nil
}

func parseRank(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.String()))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
