package placement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Role distinguishes the primary tree from the duplicates archive.
type Role int

const (
	RoleUnique Role = iota
	RoleDuplicate
)

// Planner resolves destination paths inside a fixed output root. All
// roots are threaded in explicitly; there is no process-wide mutable
// configuration.
type Planner struct {
	root          string
	duplicatesDir string
	noDateDir     string
}

// NewPlanner builds a planner for the given output root. duplicatesDir
// and noDateDir are single path elements (e.g. "_duplicates", "_no_date").
func NewPlanner(root, duplicatesDir, noDateDir string) *Planner {
	return &Planner{
		root:          root,
		duplicatesDir: duplicatesDir,
		noDateDir:     noDateDir,
	}
}

// Plan returns a destination path for the file that does not exist at the
// moment of resolution. hasDate selects between the YYYY/MM bucket and
// the date-less bucket.
func (p *Planner) Plan(sourcePath string, date time.Time, hasDate bool, role Role) string {
	dir := p.bucketDir(date, hasDate, role)
	return ensureUnused(filepath.Join(dir, filepath.Base(sourcePath)))
}

func (p *Planner) bucketDir(date time.Time, hasDate bool, role Role) string {
	base := p.root
	if role == RoleDuplicate {
		base = filepath.Join(base, p.duplicatesDir)
	}
	if !hasDate {
		return filepath.Join(base, p.noDateDir)
	}
	return filepath.Join(base, fmt.Sprintf("%04d", date.Year()), fmt.Sprintf("%02d", int(date.Month())))
}

// ensureUnused probes candidate names until one does not exist on disk.
func ensureUnused(dest string) string {
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}

	dir := filepath.Dir(dest)
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(filepath.Base(dest), ext)

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
