// Package pager drives infinite-scroll style consumption of the backend's
// fixed-size property pages.
package pager

import (
	"context"

	"github.com/julzedz/pbs-frontend/internal/client/jsonapi"
)

// FetchFunc loads one page, numbered from 1.
type FetchFunc func(ctx context.Context, page int) (*jsonapi.ListDocument, error)

// Pager accumulates pages and derives the visible list through the tombstone
// predicate. Not safe for concurrent use; callers run it from one goroutine,
// and the fetching guard only suppresses re-entrant triggers.
type Pager struct {
	fetch    FetchFunc
	pageSize int
	hidden   func(id string) bool

	items    []jsonapi.Resource
	included []jsonapi.Resource
	next     int
	hasMore  bool
	fetching bool
	loaded   bool
}

// New builds a pager over fetch with the given page size. hidden may be nil;
// when set, matching ids are dropped from Visible but never from the hasMore
// computation.
func New(fetch FetchFunc, pageSize int, hidden func(id string) bool) *Pager {
	return &Pager{fetch: fetch, pageSize: pageSize, hidden: hidden}
}

// Load fetches page 1, discarding anything accumulated so far.
func (p *Pager) Load(ctx context.Context) error {
	p.items = nil
	p.included = nil
	p.next = 1
	p.hasMore = false
	p.loaded = false
	return p.advance(ctx)
}

// More fetches the next page. A no-op while a fetch is in flight, before the
// first Load, or once the last short page has been seen.
func (p *Pager) More(ctx context.Context) error {
	if !p.loaded || !p.hasMore {
		return nil
	}
	return p.advance(ctx)
}

func (p *Pager) advance(ctx context.Context) error {
	if p.fetching {
		return nil
	}
	p.fetching = true
	defer func() { p.fetching = false }()

	doc, err := p.fetch(ctx, p.next)
	if err != nil {
		return err
	}
	p.items = append(p.items, doc.Data...)
	p.included = append(p.included, doc.Included...)
	// hasMore follows the raw page length; a fully tombstoned page must not
	// suppress the next fetch
	p.hasMore = len(doc.Data) == p.pageSize
	p.next++
	p.loaded = true
	return nil
}

// Visible returns the accumulated items minus tombstoned ids.
func (p *Pager) Visible() []jsonapi.Resource {
	if p.hidden == nil {
		return p.items
	}
	out := make([]jsonapi.Resource, 0, len(p.items))
	for _, res := range p.items {
		if p.hidden(res.ID) {
			continue
		}
		out = append(out, res)
	}
	return out
}

// Included returns every side-loaded resource seen so far.
func (p *Pager) Included() []jsonapi.Resource { return p.included }

// HasMore reports whether another page should be requested.
func (p *Pager) HasMore() bool { return p.hasMore }

// Empty reports a completed first load that yielded nothing.
func (p *Pager) Empty() bool { return p.loaded && len(p.items) == 0 }
