package walker

import (
	"fmt"
	"math"
	"net/mail"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/sync/errgroup"

	"github.com/flanksource/commons/logger"

	"github.com/daedalus-tools/funchistory/filter"
	"github.com/daedalus-tools/funchistory/history"
	"github.com/daedalus-tools/funchistory/lang"
	"github.com/daedalus-tools/funchistory/parse"
)

// parseRFC2822 parses s as an RFC 2822/5322 date and returns it in UTC;
// mail.ParseDate already handles the common variants, so Search simply
// delegates to it rather than hand-rolling a parser.
func parseRFC2822(s string) (time.Time, error) {
	t, err := mail.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// candidate is a commit's decoded metadata plus its hash, carried
// through validation and pre-filtering before any tree is opened.
type candidate struct {
	info history.CommitInfo
	hash plumbing.Hash
}

// Search walks the commit graph reachable from HEAD of the repository
// discovered upward from the current working directory, parses every
// blob surviving fileFilter at every commit surviving historyFilter's
// commit-scope predicate, and returns the resulting History.
//
// historyFilter must be a commit-scope filter (CommitHash, DateExact,
// DateRange, Author, AuthorEmail, Message, Language) or
// filter.NewNoneFilter(); file-scope and node-scope filters apply
// afterwards via history.FilterBy.
func Search(name string, fileFilter FileFilter, historyFilter filter.HistoryFilter, plugins []lang.Plugin) (*history.History, error) {
	if name == "" {
		return nil, &BadArgumentError{Reason: "function name is empty"}
	}
	if historyFilter.Kind != filter.KindNone && historyFilter.Scope() != filter.ScopeCommit {
		return nil, &BadArgumentError{Reason: "file and node filters do not apply during search; use History.FilterBy after searching"}
	}
	if fileFilter.IsPathSpecific() {
		if _, err := lang.ResolveByFilename(fileFilter.Path(), plugins); err != nil {
			return nil, &UnsupportedFileError{Path: fileFilter.Path(), Plugins: plugins}
		}
	}

	var dateTarget time.Time
	isExactDate := historyFilter.Kind == filter.KindDateExact
	if isExactDate {
		t, err := parseRFC2822(historyFilter.DateStart)
		if err != nil {
			return nil, &BadArgumentError{Reason: "invalid date: " + err.Error()}
		}
		dateTarget = t
	}
	var rangeStart, rangeEnd time.Time
	isDateRange := historyFilter.Kind == filter.KindDateRange
	if isDateRange {
		s, err := parseRFC2822(historyFilter.DateStart)
		if err != nil {
			return nil, &BadArgumentError{Reason: "invalid start date: " + err.Error()}
		}
		e, err := parseRFC2822(historyFilter.DateEnd)
		if err != nil {
			return nil, &BadArgumentError{Reason: "invalid end date: " + err.Error()}
		}
		if s.After(e) {
			return nil, &BadArgumentError{Reason: "start date is after end date"}
		}
		rangeStart, rangeEnd = s, e
	}

	instantiated, err := lang.InstantiateAll(plugins, name)
	if err != nil {
		return nil, err
	}

	repoPath, err := discoverRepoPath()
	if err != nil {
		return nil, &RepoError{Err: err}
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, &RepoError{Err: err}
	}
	head, err := repo.Head()
	if err != nil {
		return nil, &RepoError{Err: err}
	}

	logger.Debugf("funchistory: searching %q from %s", name, head.Hash())

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, &RepoError{Err: err}
	}
	defer iter.Close()

	if isExactDate {
		best, found, err := closestCommit(iter, dateTarget)
		if err != nil {
			return nil, &RepoError{Err: err}
		}
		if !found {
			return nil, ErrNoHistory
		}
		return buildHistory(name, repoPath, []candidate{best}, fileFilter, instantiated, historyFilter)
	}

	var candidates []candidate
	err = iter.ForEach(func(c *object.Commit) error {
		logger.Tracef("funchistory: considering commit %s", c.Hash)
		info := commitInfoOf(c)
		if !commitSurvivesPreFilter(info, historyFilter, rangeStart, rangeEnd, isDateRange) {
			return nil
		}
		candidates = append(candidates, candidate{info: info, hash: c.Hash})
		return nil
	})
	if err != nil {
		return nil, &RepoError{Err: err}
	}

	return buildHistory(name, repoPath, candidates, fileFilter, instantiated, historyFilter)
}

func commitInfoOf(c *object.Commit) history.CommitInfo {
	return history.CommitInfo{
		Hash: c.Hash.String(),
		// Committer time, not author time: this is the key repo.Log sorts
		// on (git.LogOrderCommitterTime) and what the original's
		// commit.time() reads (gix's commit.time() is the committer
		// signature's time; commit.author() there supplies only name and
		// email). A rebase/cherry-pick/amend can make these diverge, so
		// using Author.When here would desync CommitInfo.Date from
		// traversal order and break date filtering and sort order.
		Date:        c.Committer.When.UTC(),
		Author:      c.Author.Name,
		AuthorEmail: c.Author.Email,
		Message:     c.Message,
	}
}

func commitSurvivesPreFilter(info history.CommitInfo, hf filter.HistoryFilter, rangeStart, rangeEnd time.Time, isDateRange bool) bool {
	switch hf.Kind {
	case filter.KindNone:
		return true
	case filter.KindCommitHash:
		return info.Hash == hf.Text
	case filter.KindAuthor:
		return strings.Contains(info.Author, hf.Text)
	case filter.KindAuthorEmail:
		return strings.Contains(info.AuthorEmail, hf.Text)
	case filter.KindMessage:
		return strings.Contains(info.Message, hf.Text)
	case filter.KindLanguage:
		return true // checked post-aggregation once ParsedFiles exist
	case filter.KindDateRange:
		if !isDateRange {
			return true
		}
		return !info.Date.Before(rangeStart) && !info.Date.After(rangeEnd)
	default:
		return true
	}
}

// closestCommit folds iter (assumed newest-first) to the single commit
// minimising the absolute distance to target in seconds, keeping the
// first (i.e. newest) commit encountered on ties.
func closestCommit(iter object.CommitIter, target time.Time) (candidate, bool, error) {
	var best candidate
	var bestDelta float64
	found := false
	err := iter.ForEach(func(c *object.Commit) error {
		logger.Tracef("funchistory: considering commit %s", c.Hash)
		info := commitInfoOf(c)
		delta := math.Abs(info.Date.Sub(target).Seconds())
		if !found || delta < bestDelta {
			best = candidate{info: info, hash: c.Hash}
			bestDelta = delta
			found = true
		}
		return nil
	})
	return best, found, err
}

// buildHistory opens the tree of every candidate commit (in parallel,
// bounded to available cores), parses every surviving blob, and
// assembles the results into a History ordered to match candidates.
func buildHistory(name, repoPath string, candidates []candidate, fileFilter FileFilter, instantiated []*lang.Instantiated, hf filter.HistoryFilter) (*history.History, error) {
	if len(candidates) == 0 {
		return nil, ErrNoHistory
	}

	byExt := make(map[string]*lang.Instantiated, len(instantiated))
	for _, inst := range instantiated {
		for _, ext := range inst.Plugin.Extensions() {
			byExt[strings.ToLower(ext)] = inst
		}
	}

	results := make([]*history.Commit, len(candidates))
	group := new(errgroup.Group)
	group.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i, cand := range candidates {
		i, cand := i, cand
		group.Go(func() error {
			repo, err := git.PlainOpen(repoPath)
			if err != nil {
				return &RepoError{Err: err}
			}
			commit, err := repo.CommitObject(cand.hash)
			if err != nil {
				return &RepoError{Err: err}
			}
			tree, err := commit.Tree()
			if err != nil {
				return &RepoError{Err: err}
			}
			files, err := traverseTree(repo, tree, "", fileFilter, byExt)
			if err != nil {
				return &RepoError{Err: err}
			}
			if len(files) == 0 {
				return nil
			}
			if hf.Kind == filter.KindLanguage {
				matched := false
				for _, f := range files {
					if f.Language() == hf.Text {
						matched = true
						break
					}
				}
				if !matched {
					return nil
				}
			}
			results[i] = history.NewCommit(cand.info, files)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var commits []*history.Commit
	for _, c := range results {
		if c != nil {
			commits = append(commits, c)
		}
	}
	if len(commits) == 0 {
		return nil, ErrNoHistory
	}

	totalFiles := 0
	for _, c := range commits {
		totalFiles += len(c.Files())
	}
	logger.Infof("funchistory: %q matched in %d commit(s), %d file(s)", name, len(commits), totalFiles)
	return history.New(name, commits), nil
}

// traverseTree recursively walks tree in a deterministic pre-order
// (git stores tree entries name-sorted already), applying fileFilter
// per blob path and dispatching matching blobs to the language whose
// extension set claims them.
func traverseTree(repo *git.Repository, tree *object.Tree, path string, fileFilter FileFilter, byExt map[string]*lang.Instantiated) ([]*parse.ParsedFile, error) {
	var out []*parse.ParsedFile
	for _, entry := range tree.Entries {
		full := entry.Name
		if path != "" {
			full = path + "/" + entry.Name
		}

		if entry.Mode == filemode.Dir {
			sub, err := repo.TreeObject(entry.Hash)
			if err != nil {
				continue // not actually a tree; skip per "neither tree nor blob"
			}
			children, err := traverseTree(repo, sub, full, fileFilter, byExt)
			if err != nil {
				return nil, err
			}
			out = append(out, children...)
			continue
		}

		if entry.Mode == filemode.Regular || entry.Mode == filemode.Executable {
			if !fileFilter.Matches(full) {
				continue
			}
			inst, ok := byExt[strings.ToLower(extensionOf(full))]
			if !ok {
				logger.Debugf("funchistory: skipping %s: extension not claimed by any plugin", full)
				continue
			}
			blob, err := repo.BlobObject(entry.Hash)
			if err != nil {
				continue
			}
			reader, err := blob.Reader()
			if err != nil {
				continue
			}
			data, err := readAllLossy(reader)
			reader.Close()
			if err != nil {
				continue
			}
			pf, err := parse.Parse(data, inst)
			if err != nil {
				continue // ParseError/NoMatches: swallowed locally, per spec error taxonomy
			}
			pf.SetFilePath(full)
			out = append(out, pf)
		}
		// symlinks and submodules are neither tree nor blob for this
		// purpose; skip them.
	}
	return out, nil
}

func extensionOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return path[idx+1:]
}

// discoverRepoPath finds the repository root by ancestor search from
// the current working directory: the first directory (walking up) that
// contains a .git entry. Returning the resolved root, rather than the
// starting directory, lets every later git.PlainOpen(repoPath) call
// succeed even when Search was invoked from a subdirectory.
func discoverRepoPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .git ancestor found from %s", dir)
		}
		dir = parent
	}
}
