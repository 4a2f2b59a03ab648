package shell

import (
	"strings"

	"github.com/spf13/afero"
)

// SearchPathDelim separates directories in the search path variable.
const SearchPathDelim = ':'

// SearchPath is the ordered list of directories used to resolve bare program
// names. It is built once at startup and only changed by Release.
type SearchPath struct {
	dirs      *ArgArray
	truncated bool
}

// ParseSearchPath splits source on ':', keeping at most capacity entries.
// Empty entries are kept and resolve from the filesystem root.
func ParseSearchPath(source string, capacity int) *SearchPath {
	dirs := NewArgArray(capacity)
	truncated := dirs.Fill(source, SearchPathDelim)
	return &SearchPath{dirs: dirs, truncated: truncated}
}

// EmptySearchPath is used when the search path variable is unset, no bare
// names will resolve.
func EmptySearchPath() *SearchPath {
	return &SearchPath{}
}

// Dirs returns a copy of the directories in search order.
func (p *SearchPath) Dirs() []string {
	return p.dirs.Args()
}

// Len returns the number of directories.
func (p *SearchPath) Len() int {
	return p.dirs.Len()
}

// Truncated is set if directories were dropped because of the capacity.
func (p *SearchPath) Truncated() bool {
	return p.truncated
}

// Release drops all directories. It is safe to call more than once.
func (p *SearchPath) Release() {
	p.dirs.Clear()
	p.dirs = nil
}

// Resolve finds the first directory containing a file called name that can
// be opened for reading.
func (p *SearchPath) Resolve(fs afero.Fs, name string) (string, bool) {
	for i := 0; i < p.dirs.Len(); i++ {
		candidate := p.dirs.At(i) + "/" + name

		fd, err := fs.Open(candidate)
		if err != nil {
			continue
		}
		fd.Close()
		return candidate, true
	}

	return "", false
}

// ResolveArgs replaces the first argument with its resolved path if it's a
// bare name found in the search path. It reports whether the argument was
// replaced.
func (p *SearchPath) ResolveArgs(fs afero.Fs, args *ArgArray) bool {
	if args.Len() == 0 || strings.Contains(args.At(0), "/") {
		return false
	}

	resolved, ok := p.Resolve(fs, args.At(0))
	if ok {
		args.Set(0, resolved)
	}
	return ok
}
