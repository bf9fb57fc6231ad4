package history_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/daedalus-tools/funchistory/filter"
	"github.com/daedalus-tools/funchistory/history"
	"github.com/daedalus-tools/funchistory/lang"
	"github.com/daedalus-tools/funchistory/parse"
)

func mustParse(source, path string) *parse.ParsedFile {
	inst, err := lang.NewInstantiated(lang.Rust{}, "empty_test")
	Expect(err).NotTo(HaveOccurred())
	pf, err := parse.Parse([]byte(source), inst)
	Expect(err).NotTo(HaveOccurred())
	pf.SetFilePath(path)
	return pf
}

const rustOne = `fn empty_test() {}`

func commitAt(hash string, when time.Time, path string) *history.Commit {
	return history.NewCommit(history.CommitInfo{
		Hash:        hash,
		Date:        when,
		Author:      "Ada",
		AuthorEmail: "ada@example.com",
		Message:     "fix things",
	}, []*parse.ParsedFile{mustParse(rustOne, path)})
}

var _ = Describe("History", func() {
	var (
		t1, t2, t3 time.Time
		c1, c2, c3 *history.Commit
		h          *history.History
	)

	BeforeEach(func() {
		t1 = time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
		t2 = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		t3 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		c1 = commitAt("c1", t1, "src/a.rs")
		c2 = commitAt("c2", t2, "src/b.rs")
		c3 = commitAt("c3", t3, "other/c.rs")
		h = history.New("empty_test", []*history.Commit{c1, c2, c3})
	})

	It("lists commit ids in stored order", func() {
		Expect(h.ListCommitIDs()).To(Equal([]string{"c1", "c2", "c3"}))
	})

	It("starts with cursors at zero", func() {
		Expect(h.CommitCursor()).To(Equal(0))
		Expect(h.CurrentCommit().FileCursor()).To(Equal(0))
	})

	It("moves the commit cursor forward and back with boundary no-ops", func() {
		Expect(h.MoveBack()).To(BeFalse())
		Expect(h.MoveForward()).To(BeTrue())
		Expect(h.CurrentCommit().Hash).To(Equal("c2"))
		Expect(h.MoveForward()).To(BeTrue())
		Expect(h.MoveForward()).To(BeFalse())
		Expect(h.CurrentCommit().Hash).To(Equal("c3"))
	})

	It("reports move direction at each boundary", func() {
		Expect(h.MoveDirection()).To(Equal(history.DirectionForward))
		h.MoveForward()
		Expect(h.MoveDirection()).To(Equal(history.DirectionBoth))
		h.MoveForward()
		Expect(h.MoveDirection()).To(Equal(history.DirectionBack))
	})

	It("reports current metadata for the cursor position", func() {
		meta := h.CurrentMetadata()
		Expect(meta["commit hash"]).To(Equal("c1"))
		Expect(meta["file"]).To(Equal("src/a.rs"))
	})

	Describe("FilterBy", func() {
		It("treats None as identity with cursors reset", func() {
			h.MoveForward()
			out, err := history.FilterBy(h, filter.NewNoneFilter())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ListCommitIDs()).To(Equal(h.ListCommitIDs()))
			Expect(out.CommitCursor()).To(Equal(0))
		})

		It("filters by commit hash", func() {
			out, err := history.FilterBy(h, filter.NewCommitHashFilter("c2"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ListCommitIDs()).To(Equal([]string{"c2"}))
		})

		It("filters by directory substring", func() {
			out, err := history.FilterBy(h, filter.NewDirectoryFilter("other"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ListCommitIDs()).To(Equal([]string{"c3"}))
		})

		It("filters by file-relative suffix", func() {
			out, err := history.FilterBy(h, filter.NewFileRelativeFilter("a.rs"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ListCommitIDs()).To(Equal([]string{"c1"}))
		})

		It("returns ErrNoResults when nothing survives", func() {
			_, err := history.FilterBy(h, filter.NewCommitHashFilter("does-not-exist"))
			Expect(err).To(MatchError(history.ErrNoResults))
		})

		It("filters by exact RFC 2822 date", func() {
			out, err := history.FilterBy(h, filter.NewDateExactFilter(t2.Format(time.RFC1123Z)))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ListCommitIDs()).To(Equal([]string{"c2"}))
		})

		It("filters by inclusive date range", func() {
			out, err := history.FilterBy(h, filter.NewDateRangeFilter(t3.Format(time.RFC1123Z), t2.Format(time.RFC1123Z)))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ListCommitIDs()).To(Equal([]string{"c2", "c3"}))
		})

		It("rejects an inverted date range", func() {
			_, err := history.FilterBy(h, filter.NewDateRangeFilter(t1.Format(time.RFC1123Z), t3.Format(time.RFC1123Z)))
			Expect(err).To(HaveOccurred())
		})
	})
})
