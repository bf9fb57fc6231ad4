package walker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daedalus-tools/funchistory/lang"
)

// BadArgumentError reports a malformed Search input: an empty name, an
// unparseable or inverted date, or a file- or node-scope history
// filter. A file filter whose extension no plugin claims is reported
// as UnsupportedFileError instead.
type BadArgumentError struct {
	Reason string
}

func (e *BadArgumentError) Error() string { return "bad argument: " + e.Reason }

// UnsupportedFileError reports that a path-specific file filter names
// an extension no supplied plugin claims.
type UnsupportedFileError struct {
	Path    string
	Plugins []lang.Plugin
}

func (e *UnsupportedFileError) Error() string {
	descriptions := make([]string, 0, len(e.Plugins))
	for _, p := range e.Plugins {
		descriptions = append(descriptions, fmt.Sprintf("(%s with extension(s) [%s])", p.Name(), strings.Join(p.Extensions(), ",")))
	}
	return fmt.Sprintf("file %s is not a supported file, the following files are supported %s", e.Path, strings.Join(descriptions, " "))
}

// RepoError wraps a repository discovery or object-decode failure.
type RepoError struct {
	Err error
}

func (e *RepoError) Error() string { return "repository error: " + e.Err.Error() }
func (e *RepoError) Unwrap() error { return e.Err }

// ErrNoHistory is returned by Search when every commit was either
// skipped by a commit-scope filter or produced zero ParsedFiles.
var ErrNoHistory = errors.New("no history found")
