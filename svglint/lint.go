// Checks the length of path data strings against
// the limits of the Android tooling.
// The checks only classify: the caller decides whether
// a finding is a warning or a failure.
package svglint

import (
	"fmt"
	"unicode/utf8"

	"github.com/benoitkugler/vectoricons/svgicon"
)

const (
	// LintThreshold is the number of characters above which
	// Android lint reports a path as too long.
	LintThreshold = 800
	// CriticalLimit is the maximum size in bytes of a string
	// constant in a compiled class file.
	CriticalLimit = 32767
)

// PathReport describes one path data string.
type PathReport struct {
	Name                 string
	CharLength           int // in runes
	ByteLength           int // UTF-8 encoded
	ExceedsLintThreshold bool
	ExceedsCriticalLimit bool
}

// HasIssue returns true if one of the limits is exceeded.
func (r PathReport) HasIssue() bool { return r.ExceedsLintThreshold || r.ExceedsCriticalLimit }

// Validate measures `pathData`.
func Validate(pathData string) PathReport {
	chars, bytes := utf8.RuneCountInString(pathData), len(pathData)
	return PathReport{
		CharLength:           chars,
		ByteLength:           bytes,
		ExceedsLintThreshold: chars > LintThreshold,
		ExceedsCriticalLimit: bytes > CriticalLimit,
	}
}

// IconReport lists the paths of an icon exceeding a limit.
type IconReport struct {
	Name      string
	Offenders []PathReport
}

// HasIssue returns true if at least one path exceeds a limit.
func (r IconReport) HasIssue() bool { return len(r.Offenders) != 0 }

// HasCritical returns true if at least one path exceeds the critical limit.
func (r IconReport) HasCritical() bool {
	for _, p := range r.Offenders {
		if p.ExceedsCriticalLimit {
			return true
		}
	}
	return false
}

// ValidateIcon checks every path of `icon`, nested groups included.
// Offenders are named path_<index>, where index is the position of
// the path in a depth-first traversal.
func ValidateIcon(name string, icon *svgicon.ParsedSVG) IconReport {
	out := IconReport{Name: name}
	for i, path := range svgicon.FlattenPaths(icon.Elements) {
		report := Validate(path.PathData)
		if !report.HasIssue() {
			continue
		}
		report.Name = fmt.Sprintf("path_%d", i)
		out.Offenders = append(out.Offenders, report)
	}
	return out
}

// Summary aggregates the reports of a batch of icons.
type Summary struct {
	Icons             int
	IconsWithIssues   int // any limit exceeded
	IconsWithCritical int // critical limit exceeded
}

// Summarize counts the icons with issues.
func Summarize(reports []IconReport) Summary {
	out := Summary{Icons: len(reports)}
	for _, r := range reports {
		if r.HasIssue() {
			out.IconsWithIssues++
		}
		if r.HasCritical() {
			out.IconsWithCritical++
		}
	}
	return out
}
