package grid

// LoadState describes the infinite-load controller's current position.
type LoadState struct {
	Loading   bool // a fetch is outstanding
	HasMore   bool // the source can still grow
	Threshold int  // remaining-row count that triggers a fetch
}

// FetchTicket represents one outstanding fetch. The host passes it
// back through Complete or Fail. Only the ticket issued for the fetch
// currently in flight settles anything: duplicates of already settled
// tickets and tickets from before a teardown are stale, and both
// calls ignore them.
type FetchTicket struct {
	seq uint64
}

// Loader decides when the table should ask its Fetcher for more rows.
// It triggers when the end of the visible window comes within Threshold
// rows of the current count, and never allows a second fetch while one
// is outstanding: repeated scroll events during a fetch must not fan
// out extra requests.
type Loader struct {
	state  LoadState
	seq    uint64
	active *FetchTicket
	emit   func(Event)
}

// NewLoader creates a loader with the given trigger threshold.
func NewLoader(threshold int) *Loader {
	return &Loader{state: LoadState{HasMore: true, Threshold: threshold}}
}

func (l *Loader) notify(e Event) {
	if l.emit != nil {
		l.emit(e)
	}
}

// State returns a copy of the current load state.
func (l *Loader) State() LoadState {
	return l.state
}

// SetHasMore overrides the has-more flag, e.g. from a source that
// learned its true size out of band.
func (l *Loader) SetHasMore(hasMore bool) {
	l.state.HasMore = hasMore
}

// RangeChanged observes a new visible window against the current row
// count. When the window end is within Threshold rows of the count, a
// fetch is due: the loader flips to loading, emits EventLoadRequested
// and returns a ticket for the host to run the fetch under. Otherwise,
// and always while a fetch is already outstanding, it returns nil.
func (l *Loader) RangeChanged(win RowWindow, rowCount int) *FetchTicket {
	if l.state.Loading || !l.state.HasMore {
		return nil
	}
	if rowCount-win.End > l.state.Threshold {
		return nil
	}
	l.state.Loading = true
	l.seq++
	l.active = &FetchTicket{seq: l.seq}
	l.notify(Event{Kind: EventLoadRequested})
	return l.active
}

// Complete reports a successful fetch. Stale or nil tickets are
// ignored. Emits EventLoadFinished and reports whether the completion
// was applied.
func (l *Loader) Complete(t *FetchTicket, res FetchResult) bool {
	if !l.settle(t) {
		return false
	}
	l.state.HasMore = res.HasMore
	l.notify(Event{Kind: EventLoadFinished, Appended: res.Appended, HasMore: res.HasMore})
	return true
}

// Fail reports a failed fetch. Loading resets so a later range change
// can retry; HasMore is left as it was. Emits EventLoadFailed.
func (l *Loader) Fail(t *FetchTicket, err error) bool {
	if !l.settle(t) {
		return false
	}
	l.notify(Event{Kind: EventLoadFailed, Err: err})
	return true
}

// settle clears the loading flag if t is the ticket of the fetch in
// flight. Identity, not generation: a duplicate settle of an old
// ticket must not land on a newer outstanding fetch.
func (l *Loader) settle(t *FetchTicket) bool {
	if t == nil || t != l.active {
		return false
	}
	l.active = nil
	l.state.Loading = false
	return true
}

// invalidate makes every issued ticket stale. Called on table
// teardown so a fetch completing afterwards lands on nothing.
func (l *Loader) invalidate() {
	l.active = nil
	l.state.Loading = false
}
