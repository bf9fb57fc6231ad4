package history

import (
	"time"

	"github.com/daedalus-tools/funchistory/parse"
)

// CommitInfo is commit metadata detached from its parsed file contents:
// enough to list and identify a commit without having walked its tree.
type CommitInfo struct {
	Hash        string
	Date        time.Time // UTC
	Author      string
	AuthorEmail string
	Message     string
}

// Commit pairs CommitInfo with the ParsedFiles found in that commit's
// tree, plus a cursor over those files. A Commit belonging to a live
// History always has at least one file.
type Commit struct {
	CommitInfo
	files       []*parse.ParsedFile
	fileCursor  int
}

// NewCommit builds a Commit from metadata and its parsed files. It
// does not validate that files is non-empty; callers that build a
// History are expected to drop commits with zero files themselves, as
// the Repository Walker does during aggregation.
func NewCommit(info CommitInfo, files []*parse.ParsedFile) *Commit {
	return &Commit{CommitInfo: info, files: files}
}

// Files returns this commit's parsed files in traversal order.
func (c *Commit) Files() []*parse.ParsedFile { return c.files }

// CurrentFile returns the file at the current file cursor.
func (c *Commit) CurrentFile() *parse.ParsedFile { return c.files[c.fileCursor] }

// FileCursor returns the current file cursor index.
func (c *Commit) FileCursor() int { return c.fileCursor }

// MoveForwardFile advances the file cursor by one, unless already at
// the last file, in which case it is a silent no-op. Returns whether
// it moved.
func (c *Commit) MoveForwardFile() bool {
	if c.fileCursor >= len(c.files)-1 {
		return false
	}
	c.fileCursor++
	return true
}

// MoveBackFile retreats the file cursor by one, unless already at the
// first file. Returns whether it moved.
func (c *Commit) MoveBackFile() bool {
	if c.fileCursor == 0 {
		return false
	}
	c.fileCursor--
	return true
}

// FileMoveDirection reports which way the file cursor may still move.
func (c *Commit) FileMoveDirection() Direction {
	return directionFor(c.fileCursor, len(c.files))
}

// clone returns a shallow copy of c with its file cursor reset to 0
// and its file slice replaced by files. Used by filter dispatch, which
// never mutates the original Commit.
func (c *Commit) clone(files []*parse.ParsedFile) *Commit {
	return &Commit{CommitInfo: c.CommitInfo, files: files}
}
