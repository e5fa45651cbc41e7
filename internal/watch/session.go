// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch coordinates fetches, curation, and bookmarks for one
// interactive session.
// Implements: the fetch coordination loop (sequence-numbered fetches,
// stale completions discarded), intent handling, and view model
// derivation.
package watch

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/pdiddy/paperwatch/internal/bookmark"
	"github.com/pdiddy/paperwatch/internal/curate"
	"github.com/pdiddy/paperwatch/internal/feed"
	"github.com/pdiddy/paperwatch/internal/logging"
	"github.com/pdiddy/paperwatch/internal/query"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// Opener opens a URL outside the process.
type Opener interface {
	Open(rawURL string) error
}

// Citer resolves a DOI to citation text.
type Citer interface {
	Lookup(ctx context.Context, doi string) (string, error)
}

// Deps are the collaborators a Session needs. Fetcher, Normalizer, and
// Bookmarks are required; Opener and Citer may be nil, in which case the
// corresponding intents report an error status.
type Deps struct {
	Fetcher    feed.Fetcher
	Normalizer *feed.Normalizer
	Bookmarks  *bookmark.Store
	Opener     Opener
	Citer      Citer
	Log        *zap.Logger
}

type fetchDone struct {
	seq  uint64
	body []byte
	err  error
}

type citeDone struct {
	seq  uint64
	id   string
	doi  string
	text string
	err  error
}

// Session owns the current batch, the sort and filter state, and the fetch
// sequence counter. Its state is confined to the goroutine running Run;
// fetches and citation lookups run on their own goroutines and report back
// through an internal channel.
type Session struct {
	deps   Deps
	log    *zap.Logger
	params query.Params

	keywords []string
	subjects []string

	filterSubjects []string
	doiOnly        bool
	sorter         *curate.Sorter

	entries []types.Entry
	visible []types.Entry

	seq      uint64
	loading  bool
	stale    int
	citeSeq  uint64
	citation *Citation
	status   Status

	events chan any
	done   chan struct{}
}

// NewSession builds a session from the feed configuration. The configured
// subjects seed both the query and the filter allow-list.
func NewSession(cfg types.FeedConfig, deps Deps) *Session {
	s := &Session{
		deps:           deps,
		log:            logging.OrNop(deps.Log),
		params:         feed.ParamsFromConfig(cfg),
		keywords:       slices.Clone(cfg.Keywords),
		subjects:       slices.Clone(cfg.Subjects),
		filterSubjects: slices.Clone(cfg.Subjects),
		sorter:         curate.NewSorter(),
		status:         Status{Kind: StatusIdle},
		events:         make(chan any),
		done:           make(chan struct{}),
	}
	if s.deps.Normalizer == nil {
		s.deps.Normalizer = feed.NewNormalizer(types.NormalizeConfig{}, s.log)
	}
	return s
}

// Run processes intents and background completions until ctx is done or
// intents is closed. It sends the initial view and then one view after
// every intent and every completion. Run must be called at most once.
func (s *Session) Run(ctx context.Context, intents <-chan Intent, views chan<- ViewModel) error {
	defer close(s.done)

	if err := s.send(ctx, views); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-intents:
			if !ok {
				return nil
			}
			s.Handle(ctx, in)
		case ev := <-s.events:
			s.complete(ev)
		}
		if err := s.send(ctx, views); err != nil {
			return err
		}
	}
}

func (s *Session) send(ctx context.Context, views chan<- ViewModel) error {
	select {
	case views <- s.View():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handle applies one intent. Only the goroutine running Run may call it.
func (s *Session) Handle(ctx context.Context, in Intent) {
	switch in := in.(type) {
	case Fetch:
		s.startFetch(ctx)
	case SetQuery:
		s.keywords = slices.Clone(in.Keywords)
		s.subjects = slices.Clone(in.Subjects)
		s.setStatus(StatusInfo, "search criteria updated")
	case Sort:
		s.visible = s.sorter.SortBy(s.filtered(), in.Key)
		s.setStatus(StatusInfo, fmt.Sprintf("sorted by %s, %s", s.sorter.Key(), s.sorter.Direction()))
	case SetFilter:
		s.filterSubjects = slices.Clone(in.Subjects)
		s.doiOnly = in.DOIOnly
		s.refresh()
		s.setStatus(StatusInfo, fmt.Sprintf("showing %d of %d entries", len(s.visible), len(s.entries)))
	case ToggleBookmark:
		s.toggleBookmark(in.ID)
	case Open:
		s.open(in.ID, in.PDF)
	case Cite:
		s.startCite(ctx, in.ID)
	default:
		s.setError(fmt.Errorf("unsupported intent %T", in))
	}
}

func (s *Session) startFetch(ctx context.Context) {
	expr, ok := query.Build(s.keywords, s.subjects)
	if !ok {
		s.setError(errors.New("no keywords or subjects to search for"))
		return
	}

	s.seq++
	seq := s.seq
	s.loading = true
	s.status = Status{Kind: StatusLoading, Message: "loading papers"}
	s.log.Debug("fetch issued", zap.Uint64("seq", seq), zap.String("query", expr))

	params := s.params
	go func() {
		body, err := s.deps.Fetcher.Fetch(ctx, expr, params)
		s.post(fetchDone{seq: seq, body: body, err: err})
	}()
}

func (s *Session) startCite(ctx context.Context, id string) {
	if s.deps.Citer == nil {
		s.setError(errors.New("citation lookup is not configured"))
		return
	}
	e, ok := s.find(id)
	if !ok {
		s.setError(fmt.Errorf("no entry with id %q", id))
		return
	}
	if e.DOI == "" {
		s.setError(fmt.Errorf("entry %q has no DOI", id))
		return
	}

	s.citeSeq++
	seq := s.citeSeq
	s.status = Status{Kind: StatusLoading, Message: "looking up citation"}
	go func() {
		text, err := s.deps.Citer.Lookup(ctx, e.DOI)
		s.post(citeDone{seq: seq, id: id, doi: e.DOI, text: text, err: err})
	}()
}

// post delivers a completion to Run, or drops it once Run has returned.
func (s *Session) post(ev any) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Session) complete(ev any) {
	switch ev := ev.(type) {
	case fetchDone:
		s.completeFetch(ev)
	case citeDone:
		s.completeCite(ev)
	}
}

func (s *Session) completeFetch(ev fetchDone) {
	if ev.seq != s.seq {
		s.stale++
		s.log.Debug("discarding stale fetch", zap.Uint64("seq", ev.seq), zap.Uint64("latest", s.seq))
		return
	}
	s.loading = false

	if ev.err != nil {
		s.log.Warn("fetch failed", zap.Uint64("seq", ev.seq), zap.Error(ev.err))
		s.setError(ev.err)
		return
	}

	res, err := s.deps.Normalizer.IngestFromBytes(ev.body)
	if err != nil {
		s.log.Warn("feed rejected", zap.Uint64("seq", ev.seq), zap.Error(err))
		s.setError(err)
		return
	}

	s.entries = res.Entries
	s.refresh()
	msg := fmt.Sprintf("loaded %d entries", len(res.Entries))
	if len(res.Dropped) > 0 {
		msg += fmt.Sprintf(" (%d dropped)", len(res.Dropped))
	}
	s.setStatus(StatusInfo, msg)
}

func (s *Session) completeCite(ev citeDone) {
	if ev.seq != s.citeSeq {
		return
	}
	if ev.err != nil {
		s.setError(ev.err)
		return
	}
	s.citation = &Citation{ID: ev.id, DOI: ev.doi, Text: ev.text}
	s.setStatus(StatusInfo, "citation ready")
}

func (s *Session) toggleBookmark(id string) {
	store := s.deps.Bookmarks
	var (
		on  bool
		err error
	)
	if e, ok := s.findInBatch(id); ok {
		on, err = store.Toggle(e)
	} else if store.IsBookmarked(id) {
		err = store.Remove(id)
	} else {
		err = fmt.Errorf("no entry with id %q", id)
	}
	if err != nil {
		s.setError(err)
		return
	}
	if on {
		s.setStatus(StatusInfo, "bookmarked")
	} else {
		s.setStatus(StatusInfo, "bookmark removed")
	}
}

func (s *Session) open(id string, pdf bool) {
	if s.deps.Opener == nil {
		s.setError(errors.New("no link opener configured"))
		return
	}
	e, ok := s.find(id)
	if !ok {
		s.setError(fmt.Errorf("no entry with id %q", id))
		return
	}
	target := e.Link
	if pdf {
		target = e.PDFLink()
	}
	if err := s.deps.Opener.Open(target); err != nil {
		s.setError(err)
		return
	}
	s.setStatus(StatusInfo, "opened "+target)
}

// find looks in the current batch, then in the bookmarks.
func (s *Session) find(id string) (types.Entry, bool) {
	if e, ok := s.findInBatch(id); ok {
		return e, true
	}
	return s.deps.Bookmarks.Get(id)
}

func (s *Session) findInBatch(id string) (types.Entry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return types.Entry{}, false
}

func (s *Session) filtered() []types.Entry {
	return curate.Filter(s.entries, s.filterSubjects, s.doiOnly)
}

// refresh recomputes the visible list under the current filter and sort.
func (s *Session) refresh() {
	s.visible = s.sorter.Apply(s.filtered())
}

func (s *Session) setStatus(kind StatusKind, msg string) {
	s.status = Status{Kind: kind, Message: msg}
}

func (s *Session) setError(err error) {
	s.status = Status{Kind: StatusError, Message: err.Error(), Err: err}
}

// View builds a snapshot of the current state.
func (s *Session) View() ViewModel {
	items := make([]Item, len(s.visible))
	for i, e := range s.visible {
		items[i] = Item{Entry: e.Clone(), Bookmarked: s.deps.Bookmarks.IsBookmarked(e.ID)}
	}
	var citation *Citation
	if s.citation != nil {
		c := *s.citation
		citation = &c
	}
	return ViewModel{
		Items:          items,
		SortKey:        s.sorter.Key(),
		Direction:      s.sorter.Direction(),
		FilterSubjects: slices.Clone(s.filterSubjects),
		DOIOnly:        s.doiOnly,
		Fetched:        len(s.entries),
		Bookmarks:      s.deps.Bookmarks.Len(),
		Status:         s.status,
		Loading:        s.loading,
		Citation:       citation,
		Seq:            s.seq,
		Stale:          s.stale,
	}
}
