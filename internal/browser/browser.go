// Package browser implements the admin dashboard's record-browsing cycle:
// a filtered, paginated complaint list kept fresh by the change feed.
package browser

import (
	"context"
	"sync"

	"github.com/Abhyam-Mathur/nagar-team/internal/models"
	"github.com/Abhyam-Mathur/nagar-team/internal/realtime"
	"github.com/Abhyam-Mathur/nagar-team/internal/repository"
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

// Lister is the read side of the complaint repository the browser needs.
type Lister interface {
	ListPage(ctx context.Context, f repository.Filter, p repository.Page) ([]models.Complaint, int, error)
}

// View is a snapshot of the browser state.
type View struct {
	Items   []models.Complaint
	Total   int
	Filter  repository.Filter
	Page    repository.Page
	Phase   Phase
	Err     error // last fetch error; stale Items/Total stay visible
	HasPrev bool
	HasNext bool
}

// Browser re-fetches on start, on every filter or page change, and on every
// change-feed event. Events are never inspected for predicate matching: any
// change re-fetches the full current page. Overlapping fetches are not
// cancelled or de-duplicated; the last response to resolve wins.
type Browser struct {
	lister Lister

	mu     sync.Mutex
	filter repository.Filter
	page   repository.Page
	items  []models.Complaint
	total  int
	phase  Phase
	err    error
}

func New(lister Lister, pageSize int) *Browser {
	return &Browser{
		lister: lister,
		page:   repository.Page{Number: 1, Size: pageSize}.Clamp(),
	}
}

// Start runs the initial fetch.
func (b *Browser) Start(ctx context.Context) { b.fetch(ctx) }

// SetFilter replaces the filter state and resets to page 1.
func (b *Browser) SetFilter(ctx context.Context, f repository.Filter) {
	b.mu.Lock()
	b.filter = f.Normalize()
	b.page.Number = 1
	b.mu.Unlock()
	b.fetch(ctx)
}

// SetPage jumps to the given 1-indexed page.
func (b *Browser) SetPage(ctx context.Context, n int) {
	if n < 1 {
		n = 1
	}
	b.mu.Lock()
	b.page.Number = n
	b.mu.Unlock()
	b.fetch(ctx)
}

// NextPage advances one page if more matching rows exist.
func (b *Browser) NextPage(ctx context.Context) {
	b.mu.Lock()
	if !b.page.HasNext(b.total) {
		b.mu.Unlock()
		return
	}
	b.page.Number++
	b.mu.Unlock()
	b.fetch(ctx)
}

// PrevPage steps one page back unless already on the first.
func (b *Browser) PrevPage(ctx context.Context) {
	b.mu.Lock()
	if !b.page.HasPrev() {
		b.mu.Unlock()
		return
	}
	b.page.Number--
	b.mu.Unlock()
	b.fetch(ctx)
}

// Watch re-fetches on every change-feed event until ctx is done or the
// channel closes. Echoes of the browser's own writes arrive here too.
func (b *Browser) Watch(ctx context.Context, events <-chan realtime.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			b.fetch(ctx)
		}
	}
}

// Snapshot returns the current state.
func (b *Browser) Snapshot() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return View{
		Items:   b.items,
		Total:   b.total,
		Filter:  b.filter,
		Page:    b.page,
		Phase:   b.phase,
		Err:     b.err,
		HasPrev: b.page.HasPrev(),
		HasNext: b.page.HasNext(b.total),
	}
}

func (b *Browser) fetch(ctx context.Context) {
	b.mu.Lock()
	b.phase = PhaseLoading
	f, p := b.filter, b.page
	b.mu.Unlock()

	items, total, err := b.lister.ListPage(ctx, f, p)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		// Keep the stale list visible; the error is transient.
		b.phase = PhaseError
		b.err = err
		return
	}
	b.items = items
	b.total = total
	b.phase = PhaseReady
	b.err = nil
}
