package export

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Scope is the naming registry of one space export. It maps every
// title seen during the export to exactly one filesystem-safe local
// file name and disambiguates titles that collide after sanitization.
//
// Two invariants hold for the lifetime of a Scope:
//  1. all allocated names are pairwise distinct, regardless of call order;
//  2. repeated allocations for the same title return the first name
//     unchanged, even when the folder or extension arguments differ.
//
// The second invariant is what makes forward allocation work: the link
// rewriter may allocate a name for a page title before that page is
// ever visited, and the walker later receives the same name.
//
// A Scope is never shared across spaces. All methods are safe for
// concurrent use.
type Scope struct {
	mu sync.Mutex

	// fileNames memoizes title → allocated file name.
	fileNames map[string]string

	// duplicates counts prior allocations per sanitized base name.
	duplicates map[string]int
}

// NewScope creates an empty naming scope.
func NewScope() *Scope {
	return &Scope{
		fileNames:  make(map[string]string),
		duplicates: make(map[string]int),
	}
}

// Allocate returns the unique local file name for the given title.
//
// isFolder suppresses extension handling entirely. explicitExt, when
// non-empty, is used as the extension; otherwise a title containing a
// "." is split at the last dot into base and extension. Collisions on
// the sanitized base are resolved by appending "_<n>" in first-seen
// order: the first "Report" keeps its name, the second becomes
// "Report_1".
func (s *Scope) Allocate(title string, isFolder bool, explicitExt string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name, ok := s.fileNames[title]; ok {
		return name
	}

	name := SanitizeFileName(title)

	var ext string
	switch {
	case isFolder:
		// Folders carry no extension.
	case explicitExt != "":
		ext = explicitExt
	default:
		if i := strings.LastIndex(name, "."); i >= 0 {
			name, ext = name[:i], name[i+1:]
		}
	}

	if n, ok := s.duplicates[name]; ok {
		s.duplicates[name] = n + 1
		name = fmt.Sprintf("%s_%d", name, n+1)
	} else {
		s.duplicates[name] = 0
	}

	if ext != "" {
		name += "." + ext
	}

	s.fileNames[title] = name
	return name
}

// invalidFileRunes are characters rejected by at least one of the
// common filesystems (NTFS being the strictest).
const invalidFileRunes = `/\:*?"<>|`

// SanitizeFileName turns arbitrary text into a name that is safe on
// common filesystems: the text is NFC-normalized, characters illegal in
// file names are replaced with "_", control characters are dropped,
// and whitespace runs collapse to a single space. An empty result
// becomes "untitled" so the allocator always has a base to count on.
func SanitizeFileName(title string) string {
	normalized := norm.NFC.String(title)

	var b strings.Builder
	b.Grow(len(normalized))
	lastWasSpace := false
	for _, r := range normalized {
		switch {
		case strings.ContainsRune(invalidFileRunes, r):
			b.WriteByte('_')
			lastWasSpace = false
		case unicode.IsControl(r):
			// Dropped entirely.
		case unicode.IsSpace(r):
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		default:
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	name := strings.TrimSpace(b.String())
	if name == "" {
		return "untitled"
	}
	return name
}
