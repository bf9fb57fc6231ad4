package history

// History is a time-ordered (newest-first) sequence of Commits
// produced by one search, with a cursor over the commit dimension.
// Commits are never reordered in place; FilterBy always returns a new
// History with cursors reset to 0.
type History struct {
	SearchedName  string
	commits       []*Commit
	commitCursor  int
}

// New builds a History from name and an already newest-first-ordered
// slice of commits.
func New(name string, commits []*Commit) *History {
	return &History{SearchedName: name, commits: commits}
}

// Commits returns the stored commits in order.
func (h *History) Commits() []*Commit { return h.commits }

// Len reports how many commits this History holds.
func (h *History) Len() int { return len(h.commits) }

// CommitCursor returns the current commit cursor index.
func (h *History) CommitCursor() int { return h.commitCursor }

// CurrentCommit returns the commit at the current cursor.
func (h *History) CurrentCommit() *Commit { return h.commits[h.commitCursor] }

// ListCommitIDs returns the hex hash of every commit, in stored order.
func (h *History) ListCommitIDs() []string {
	ids := make([]string, len(h.commits))
	for i, c := range h.commits {
		ids[i] = c.Hash
	}
	return ids
}

// MoveForward advances the commit cursor by one unless already at the
// last commit, in which case it is a silent no-op.
func (h *History) MoveForward() bool {
	if h.commitCursor >= len(h.commits)-1 {
		return false
	}
	h.commitCursor++
	return true
}

// MoveBack retreats the commit cursor by one unless already at the
// first commit.
func (h *History) MoveBack() bool {
	if h.commitCursor == 0 {
		return false
	}
	h.commitCursor--
	return true
}

// MoveForwardFile delegates to the current commit's file cursor.
func (h *History) MoveForwardFile() bool {
	return h.CurrentCommit().MoveForwardFile()
}

// MoveBackFile delegates to the current commit's file cursor.
func (h *History) MoveBackFile() bool {
	return h.CurrentCommit().MoveBackFile()
}

// MoveDirection reports which way the commit cursor may still move.
func (h *History) MoveDirection() Direction {
	return directionFor(h.commitCursor, len(h.commits))
}

// CurrentMetadata returns a three-key map describing the current
// position: commit hash, date (RFC 2822), and the current file's path.
func (h *History) CurrentMetadata() map[string]string {
	c := h.CurrentCommit()
	return map[string]string{
		"commit hash": c.Hash,
		"date":        c.Date.Format(rfc2822Layout),
		"file":        c.CurrentFile().FilePath(),
	}
}

// rfc2822Layout matches net/mail's canonical RFC 2822 rendering used
// throughout this system's wire format.
const rfc2822Layout = "Mon, 02 Jan 2006 15:04:05 -0700"

// clone returns a new History over commits, with searched name carried
// over and cursors reset to 0.
func (h *History) clone(commits []*Commit) *History {
	return &History{SearchedName: h.SearchedName, commits: commits}
}
