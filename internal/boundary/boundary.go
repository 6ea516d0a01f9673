// Package boundary implements the filesystem-facing services described in
// §4.7: discovering combat log files under a root directory, sanitising a
// requested filename against path traversal, formatting byte sizes for
// display, and extracting a display date from the log's own filename
// convention.
package boundary

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// LogFile describes one discovered combat log, ready for the /api/logs
// listing response.
type LogFile struct {
	Filename    string `json:"filename"`
	Path        string `json:"-"`
	SizeBytes   int64  `json:"size_bytes"`
	SizeDisplay string `json:"size_display"`
	DateStr     string `json:"date_str"`
}

// List walks root depth-first for files named "WoWCombatLog*.txt", sorted
// reverse-chronologically by the MMDDYY_HHMMSS embedded in the filename.
// Duplicate filenames (e.g. the same log present under two sub-directories)
// are deduplicated after sorting, keeping the first (most recent) entry.
func List(root string) ([]LogFile, error) {
	var found []LogFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal to the walk
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasPrefix(name, "WoWCombatLog") || !strings.HasSuffix(name, ".txt") {
			return nil
		}
		info, statErr := d.Info()
		if statErr != nil {
			return nil
		}
		found = append(found, LogFile{
			Filename:    name,
			Path:        path,
			SizeBytes:   info.Size(),
			SizeDisplay: FormatSize(info.Size()),
			DateStr:     DateFromFilename(name),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(found, func(i, j int) bool {
		return sortKey(found[i].Filename) > sortKey(found[j].Filename)
	})

	seen := make(map[string]bool, len(found))
	out := make([]LogFile, 0, len(found))
	for _, f := range found {
		if seen[f.Filename] {
			continue
		}
		seen[f.Filename] = true
		out = append(out, f)
	}
	return out, nil
}

// sortKey turns "WoWCombatLog-MMDDYY_HHMMSS.txt" into a lexically sortable
// "YYMMDDHHMMSS" key; filenames that don't match the pattern sort last.
func sortKey(filename string) string {
	mmddyy, hhmmss, ok := splitStamp(filename)
	if !ok {
		return ""
	}
	if len(mmddyy) != 6 || len(hhmmss) != 6 {
		return ""
	}
	mm, dd, yy := mmddyy[0:2], mmddyy[2:4], mmddyy[4:6]
	return yy + mm + dd + hhmmss
}

// DateFromFilename extracts "20YY-MM-DD" from
// "WoWCombatLog-MMDDYY_HHMMSS.txt"; it returns "" when the filename doesn't
// carry a recognisable stamp.
func DateFromFilename(filename string) string {
	mmddyy, _, ok := splitStamp(filename)
	if !ok || len(mmddyy) != 6 {
		return ""
	}
	mm, dd, yy := mmddyy[0:2], mmddyy[2:4], mmddyy[4:6]
	return "20" + yy + "-" + mm + "-" + dd
}

// splitStamp pulls the "MMDDYY" and "HHMMSS" components out of
// "WoWCombatLog[-...]-MMDDYY_HHMMSS.txt".
func splitStamp(filename string) (mmddyy, hhmmss string, ok bool) {
	base := strings.TrimSuffix(filename, ".txt")
	underscore := strings.LastIndexByte(base, '_')
	if underscore < 0 {
		return "", "", false
	}
	hhmmss = base[underscore+1:]
	rest := base[:underscore]
	dash := strings.LastIndexByte(rest, '-')
	if dash < 0 {
		return "", "", false
	}
	mmddyy = rest[dash+1:]
	return mmddyy, hhmmss, true
}

// Sanitize rejects a requested filename that attempts path traversal
// (containing "..", "/", or "\"); it never touches the filesystem.
func Sanitize(filename string) bool {
	return !strings.Contains(filename, "..") &&
		!strings.ContainsRune(filename, '/') &&
		!strings.ContainsRune(filename, '\\')
}

// Resolve performs a depth-first search under root for a file exactly named
// filename, returning its full path. Callers must call Sanitize first —
// Resolve itself does not re-validate the name.
func Resolve(root, filename string) (path string, ok bool) {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == filename {
			path = p
			ok = true
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", false
	}
	return path, ok
}

// binaryUnits relabels humanize.IBytes's "KiB/MiB/GiB/TiB" suffixes to the
// plain "KB/MB/GB/TB" labels — the size math (powers of 1024) is IBytes's
// job; only the label text differs from humanize's default.
var binaryUnits = strings.NewReplacer("KiB", "KB", "MiB", "MB", "GiB", "GB", "TiB", "TB")

// FormatSize renders n bytes using powers-of-1024 units (B/KB/MB/GB) via
// humanize.IBytes. A value carries one decimal place only while it is below
// 10 of its unit ("2.0 KB"); from 10 upward it is a whole number ("20 KB").
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return binaryUnits.Replace(humanize.IBytes(uint64(n)))
}
