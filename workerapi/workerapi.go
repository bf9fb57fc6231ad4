// Package workerapi types the request/response shapes of spec.md §6's
// worker-thread collaborator: the channel contract a UI event loop uses
// to drive the core from a background task. It contains no event loop,
// no channel plumbing, and no poll-timeout logic — that glue belongs to
// the out-of-scope worker-thread collaborator itself (spec.md §1); this
// package only pins the message shapes precisely enough for a caller to
// type-check against.
package workerapi

import (
	"github.com/daedalus-tools/funchistory/filter"
	"github.com/daedalus-tools/funchistory/history"
	"github.com/daedalus-tools/funchistory/lang"
	"github.com/daedalus-tools/funchistory/walker"
)

// ListKind selects which flavour of list a List request produces.
type ListKind int

const (
	ListDates ListKind = iota
	ListCommits
)

func (k ListKind) String() string {
	switch k {
	case ListDates:
		return "dates"
	case ListCommits:
		return "commits"
	default:
		return "unknown"
	}
}

// Request is the tagged union of messages the worker-thread collaborator
// accepts: List, Search, and Filter, per spec.md §6's table. Only the
// fields of the variant selected by Kind are meaningful.
type Request struct {
	Kind RequestKind

	// List: which kind of list to produce.
	List ListKind

	// Search: the three search parameters, plus the open set of
	// language plugins to search with. A nil Plugins falls back to
	// lang.Default(); callers may pass additional plugins alongside the
	// built-ins, per spec.md §4.1's open registration.
	SearchName          string
	SearchFileFilter    walker.FileFilter
	SearchHistoryFilter filter.HistoryFilter
	SearchPlugins       []lang.Plugin

	// Filter: the History to narrow and the filter to apply.
	FilterThing  *history.History
	FilterFilter filter.HistoryFilter
}

// RequestKind discriminates Request's variants.
type RequestKind int

const (
	RequestList RequestKind = iota
	RequestSearch
	RequestFilter
)

// NewListRequest builds a List request for the given ListKind.
func NewListRequest(kind ListKind) Request {
	return Request{Kind: RequestList, List: kind}
}

// NewSearchRequest builds a Search request using the default plugin set.
// Use the Request fields directly to search with additional plugins.
func NewSearchRequest(name string, fileFilter walker.FileFilter, historyFilter filter.HistoryFilter) Request {
	return Request{Kind: RequestSearch, SearchName: name, SearchFileFilter: fileFilter, SearchHistoryFilter: historyFilter}
}

// NewFilterRequest builds a Filter request.
func NewFilterRequest(thing *history.History, f filter.HistoryFilter) Request {
	return Request{Kind: RequestFilter, FilterThing: thing, FilterFilter: f}
}

// StatusKind discriminates Response's paired status.
type StatusKind int

const (
	StatusOk StatusKind = iota
	StatusError
)

// Status pairs every Response with an outcome: Ok (with an optional
// human-readable message) or Error (with a message), per spec.md §6.
type Status struct {
	Kind    StatusKind
	Message string // present for StatusError; optional for StatusOk
}

func Ok(message string) Status        { return Status{Kind: StatusOk, Message: message} }
func ErrStatus(message string) Status { return Status{Kind: StatusError, Message: message} }

// ResponseKind discriminates Response's payload.
type ResponseKind int

const (
	ResponseDates ResponseKind = iota
	ResponseCommits
	ResponseHistory
)

// Response is the payload a worker sends back for a given Request, paired
// with its Status.
type Response struct {
	Kind   ResponseKind
	Status Status

	Dates   []string // RFC 2822 date strings, for List(Dates)
	Commits []string // hex commit hashes, for List(Commits)
	History *history.History
}

// Handle executes req synchronously against the core (search, list_commits,
// History.filter_by) and returns the Response a worker would send back over
// its channel. It performs no I/O beyond what walker/history already do and
// holds no state between calls; the actual channel, poll timeout, and
// shutdown-on-disconnect behaviour belong to the worker-thread collaborator
// that calls Handle from its event loop.
func Handle(req Request) Response {
	switch req.Kind {
	case RequestList:
		return handleList(req.List)
	case RequestSearch:
		return handleSearch(req)
	case RequestFilter:
		return handleFilter(req)
	default:
		return Response{Kind: ResponseHistory, Status: ErrStatus("unknown request kind")}
	}
}

func handleList(kind ListKind) Response {
	commits, err := walker.ListCommits()
	if err != nil {
		return Response{Kind: ResponseCommits, Status: ErrStatus(err.Error())}
	}
	switch kind {
	case ListDates:
		dates := make([]string, len(commits))
		for i, c := range commits {
			dates[i] = c.Date.Format("Mon, 02 Jan 2006 15:04:05 -0700")
		}
		return Response{Kind: ResponseDates, Status: Ok(""), Dates: dates}
	default:
		hashes := make([]string, len(commits))
		for i, c := range commits {
			hashes[i] = c.Hash
		}
		return Response{Kind: ResponseCommits, Status: Ok(""), Commits: hashes}
	}
}

func handleSearch(req Request) Response {
	plugins := req.SearchPlugins
	if plugins == nil {
		plugins = lang.Default()
	}
	h, err := walker.Search(req.SearchName, req.SearchFileFilter, req.SearchHistoryFilter, plugins)
	if err != nil {
		return Response{Kind: ResponseHistory, Status: ErrStatus(err.Error())}
	}
	return Response{Kind: ResponseHistory, Status: Ok(""), History: h}
}

func handleFilter(req Request) Response {
	h, err := history.FilterBy(req.FilterThing, req.FilterFilter)
	if err != nil {
		return Response{Kind: ResponseHistory, Status: ErrStatus(err.Error())}
	}
	return Response{Kind: ResponseHistory, Status: Ok(""), History: h}
}
