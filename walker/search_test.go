package walker_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/daedalus-tools/funchistory/filter"
	"github.com/daedalus-tools/funchistory/lang"
	"github.com/daedalus-tools/funchistory/walker"
)

// writeCommit writes files (path -> content) into repoDir's worktree and
// commits them with the given message, using when as both the author and
// the committer time, returning the new commit's hash.
func writeCommit(repo *git.Repository, repoDir string, files map[string]string, message string, when time.Time) string {
	wt, err := repo.Worktree()
	Expect(err).NotTo(HaveOccurred())

	for path, content := range files {
		full := filepath.Join(repoDir, path)
		Expect(os.MkdirAll(filepath.Dir(full), 0o755)).To(Succeed())
		Expect(os.WriteFile(full, []byte(content), 0o644)).To(Succeed())
		_, err := wt.Add(path)
		Expect(err).NotTo(HaveOccurred())
	}

	sig := &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: when}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	Expect(err).NotTo(HaveOccurred())
	return hash.String()
}

// writeCommitWithTimes is writeCommit but lets the author and committer
// signatures diverge, as a rebase, cherry-pick, or amend would produce.
func writeCommitWithTimes(repo *git.Repository, repoDir string, files map[string]string, message string, authorWhen, committerWhen time.Time) string {
	wt, err := repo.Worktree()
	Expect(err).NotTo(HaveOccurred())

	for path, content := range files {
		full := filepath.Join(repoDir, path)
		Expect(os.MkdirAll(filepath.Dir(full), 0o755)).To(Succeed())
		Expect(os.WriteFile(full, []byte(content), 0o644)).To(Succeed())
		_, err := wt.Add(path)
		Expect(err).NotTo(HaveOccurred())
	}

	author := &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: authorWhen}
	committer := &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: committerWhen}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: author, Committer: committer})
	Expect(err).NotTo(HaveOccurred())
	return hash.String()
}

var _ = Describe("Search", func() {
	var (
		repoDir string
		prevDir string
		repo    *git.Repository
	)

	BeforeEach(func() {
		var err error
		repoDir, err = os.MkdirTemp("", "funchistory-walker-*")
		Expect(err).NotTo(HaveOccurred())

		repo, err = git.PlainInit(repoDir, false)
		Expect(err).NotTo(HaveOccurred())

		prevDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(repoDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Chdir(prevDir)).To(Succeed())
		Expect(os.RemoveAll(repoDir)).To(Succeed())
	})

	// S1: a single commit with a file containing both a zero-arg function
	// and a non-empty one; searching for the first returns exactly one
	// ParsedFile with one range at the expected line.
	It("finds a single top-level function and reports its row range (S1)", func() {
		source := "fn empty_test() {}\n\npub fn not_empty_test() {\n    let x = 1;\n    x + 1\n}\n"
		writeCommit(repo, repoDir, map[string]string{"test.rs": source}, "add test.rs", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

		h, err := walker.Search("empty_test", walker.FileFilterNone(), filter.NewNoneFilter(), lang.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(h.Len()).To(Equal(1))

		commit := h.CurrentCommit()
		Expect(commit.Files()).To(HaveLen(1))
		pf := commit.Files()[0]
		Expect(pf.Matches()).To(HaveLen(1))
		m := pf.Matches()[0]
		Expect(m.RowStart).To(BeEquivalentTo(0))
		Expect(m.RowEnd).To(BeEquivalentTo(0))
		Expect(pf.String()).To(ContainSubstring("fn empty_test"))
	})

	// S3: three commits C1 (newest) -> C2 -> C3 (oldest); empty_test exists
	// only in C1 and C3. Search returns History of length 2, ordered
	// [C1, C3].
	It("returns only the commits containing the identifier, newest first (S3)", func() {
		withFn := "fn empty_test() {}\n"
		withoutFn := "fn other_thing() {}\n"

		writeCommit(repo, repoDir, map[string]string{"test.rs": withFn}, "C3: add empty_test", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		writeCommit(repo, repoDir, map[string]string{"test.rs": withoutFn}, "C2: remove empty_test", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
		c1 := writeCommit(repo, repoDir, map[string]string{"test.rs": withFn}, "C1: re-add empty_test", time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC))

		h, err := walker.Search("empty_test", walker.FileFilterNone(), filter.NewNoneFilter(), lang.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(h.Len()).To(Equal(2))
		Expect(h.ListCommitIDs()[0]).To(Equal(c1))
	})

	// CommitInfo.Date must key off committer time, not author time,
	// since that is both the traversal order (git.LogOrderCommitterTime)
	// and the original's commit.time() semantics. Give the older commit
	// (by committer time) a much later author time, as a rebase or
	// cherry-pick would produce, and confirm the reported Date and the
	// resulting ordering still follow committer time.
	It("orders and dates commits by committer time, not author time (diverging times)", func() {
		rebasedAuthorTime := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		olderCommitterTime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		newerCommitterTime := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

		older := writeCommitWithTimes(repo, repoDir, map[string]string{"test.rs": "fn empty_test() {}\n"}, "rebased commit", rebasedAuthorTime, olderCommitterTime)
		newer := writeCommitWithTimes(repo, repoDir, map[string]string{"test.rs": "fn empty_test() {}\n"}, "later commit", newerCommitterTime, newerCommitterTime)

		h, err := walker.Search("empty_test", walker.FileFilterNone(), filter.NewNoneFilter(), lang.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(h.Len()).To(Equal(2))

		Expect(h.ListCommitIDs()).To(Equal([]string{newer, older}))
		Expect(h.CurrentCommit().Date.Equal(newerCommitterTime)).To(BeTrue())
		h.MoveForward()
		Expect(h.CurrentCommit().Date.Equal(olderCommitterTime)).To(BeTrue())
	})

	// S4: searching for a name that appears nowhere yields NoHistory.
	It("returns ErrNoHistory when the identifier never occurs (S4)", func() {
		writeCommit(repo, repoDir, map[string]string{"test.rs": "fn something_else() {}\n"}, "add file", time.Now().Add(-time.Hour))

		_, err := walker.Search("nonexistent", walker.FileFilterNone(), filter.NewNoneFilter(), lang.Default())
		Expect(err).To(MatchError(walker.ErrNoHistory))
	})

	// S5: an Absolute file filter naming an extension no plugin claims
	// fails validation before any commit is touched.
	It("rejects a file filter naming an unsupported extension (S5)", func() {
		writeCommit(repo, repoDir, map[string]string{"src/test_functions.txt": "irrelevant"}, "add txt", time.Now().Add(-time.Hour))

		_, err := walker.Search("empty_test", walker.FileFilterAbsolute("src/test_functions.txt"), filter.NewNoneFilter(), lang.Default())
		Expect(err).To(HaveOccurred())
		var unsupported *walker.UnsupportedFileError
		Expect(err).To(BeAssignableToTypeOf(unsupported))
		Expect(err.Error()).To(ContainSubstring("is not a supported file"))
	})

	It("rejects an empty search name", func() {
		_, err := walker.Search("", walker.FileFilterNone(), filter.NewNoneFilter(), lang.Default())
		Expect(err).To(HaveOccurred())
	})

	It("narrows to a directory via the file filter", func() {
		writeCommit(repo, repoDir, map[string]string{
			"src/a.rs":   "fn empty_test() {}\n",
			"other/b.rs": "fn empty_test() {}\n",
		}, "add two files", time.Now().Add(-time.Hour))

		h, err := walker.Search("empty_test", walker.FileFilterDirectory("src"), filter.NewNoneFilter(), lang.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(h.CurrentCommit().Files()).To(HaveLen(1))
		Expect(h.CurrentCommit().Files()[0].FilePath()).To(Equal("src/a.rs"))
	})

	It("selects the single closest commit for an exact-date filter that has no exact match", func() {
		t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		t2 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		writeCommit(repo, repoDir, map[string]string{"test.rs": "fn empty_test() {}\n"}, "first", t1)
		writeCommit(repo, repoDir, map[string]string{"test.rs": "fn empty_test() {}\n"}, "second", t2)

		target := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		hf := filter.NewDateExactFilter(target.Format("Mon, 02 Jan 2006 15:04:05 -0700"))

		h, err := walker.Search("empty_test", walker.FileFilterNone(), hf, lang.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(h.Len()).To(Equal(1))
		Expect(h.CurrentCommit().Date.Equal(t1)).To(BeTrue())
	})

	It("lists every commit via ListCommits without touching any tree", func() {
		writeCommit(repo, repoDir, map[string]string{"test.rs": "fn empty_test() {}\n"}, "only commit", time.Now().Add(-time.Hour))

		infos, err := walker.ListCommits()
		Expect(err).NotTo(HaveOccurred())
		Expect(infos).To(HaveLen(1))
		Expect(infos[0].Author).To(Equal("Ada Lovelace"))
	})
})
