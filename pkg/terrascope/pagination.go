package terrascope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// PageFetcher fetches one page of a server-paginated collection by its
// reference (an absolute URL or opaque token) and returns the raw page
// document. The internal HTTP client implements this interface; tests
// substitute their own.
type PageFetcher interface {
	FetchPage(ctx context.Context, ref string) ([]byte, error)
}

// PageFetcherFunc adapts a function to the PageFetcher interface.
type PageFetcherFunc func(ctx context.Context, ref string) ([]byte, error)

// FetchPage implements PageFetcher.
func (f PageFetcherFunc) FetchPage(ctx context.Context, ref string) ([]byte, error) {
	return f(ctx, ref)
}

// PageConfig names the JSON keys that hold a page's items and its next-page
// reference. Endpoints differ: items live under "features", "orders",
// "results" and so on, and the next link under "_links"."_next",
// "_links"."next" or "links"."next". NextFunc overrides the default link
// lookup entirely for endpoints with non-object link shapes (for example
// OGC-style link arrays).
type PageConfig struct {
	ItemsKey string
	LinksKey string
	NextKey  string

	NextFunc func(page map[string]json.RawMessage) (string, error)
}

// Next extracts the next-page reference from a decoded page document. An
// empty string means the sequence ends with this page.
func (c PageConfig) Next(page map[string]json.RawMessage) (string, error) {
	if c.NextFunc != nil {
		return c.NextFunc(page)
	}

	rawLinks, ok := page[c.LinksKey]
	if !ok {
		return "", nil
	}

	var links map[string]json.RawMessage

	err := json.Unmarshal(rawLinks, &links)
	if err != nil {
		return "", fmt.Errorf("parsing %q object: %w", c.LinksKey, err)
	}

	rawNext, ok := links[c.NextKey]
	if !ok {
		return "", nil
	}

	// The next link is either a bare string or an object with an href.
	var ref string
	if err := json.Unmarshal(rawNext, &ref); err == nil {
		return ref, nil
	}

	var link struct {
		Href string `json:"href"`
	}

	err = json.Unmarshal(rawNext, &link)
	if err != nil {
		return "", fmt.Errorf("parsing %q link: %w", c.NextKey, err)
	}

	return link.Href, nil
}

// items decodes the page's item collection in server order.
func (c PageConfig) items(page map[string]json.RawMessage) ([]json.RawMessage, error) {
	raw, ok := page[c.ItemsKey]
	if !ok {
		return nil, nil
	}

	var items []json.RawMessage

	err := json.Unmarshal(raw, &items)
	if err != nil {
		return nil, fmt.Errorf("parsing %q collection: %w", c.ItemsKey, err)
	}

	return items, nil
}

// Iterator is a lazy, forward-only, single-pass sequence of items drawn
// from a paginated collection. Pages are fetched one at a time, only when
// the buffered page is exhausted; items are yielded in the exact order the
// server returned them.
//
// An Iterator owns its buffer exclusively and is not safe for concurrent
// use. Two iterators built from the same initial reference are fully
// independent: no pages are shared or cached between them.
//
// Cycle detection compares a fetched page's next reference only against
// the reference that produced the page. A longer cycle spanning several
// pages is not caught; this mirrors the server contract, which only ever
// repeats the immediate reference when misbehaving.
type Iterator[T any] struct {
	fetcher PageFetcher
	config  PageConfig
	limit   int

	nextRef string
	buffer  []json.RawMessage
	yielded int
	started bool
	done    bool
}

// NewIterator builds an iterator over the collection rooted at first.
// A limit of 0 means unlimited; a positive limit yields at most that many
// items and stops issuing requests once it is satisfied.
func NewIterator[T any](fetcher PageFetcher, first string, config PageConfig, limit int) *Iterator[T] {
	return &Iterator[T]{
		fetcher: fetcher,
		config:  config,
		limit:   limit,
		nextRef: first,
	}
}

// NewIteratorFromPage builds an iterator whose first page has already been
// fetched. Search endpoints return their first result page in the POST
// response; iteration continues from that page's next reference.
func NewIteratorFromPage[T any](fetcher PageFetcher, body []byte, config PageConfig, limit int) (*Iterator[T], error) {
	var page map[string]json.RawMessage

	err := json.Unmarshal(body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	next, err := config.Next(page)
	if err != nil {
		return nil, err
	}

	items, err := config.items(page)
	if err != nil {
		return nil, err
	}

	it := NewIterator[T](fetcher, next, config, limit)
	it.started = true
	it.buffer = items

	return it, nil
}

// HasNext reports whether another item may be available without issuing a
// network request. It can report true immediately before Next returns
// ErrNoMoreItems when the final page turns out to be empty.
func (it *Iterator[T]) HasNext() bool {
	if it.done {
		return false
	}

	if it.limit > 0 && it.yielded >= it.limit {
		return false
	}

	return len(it.buffer) > 0 || it.nextRef != "" || !it.started
}

// Next returns the next item in origin order. It returns ErrNoMoreItems
// once the sequence is exhausted and ErrPagingCycle if the server repeats
// a next reference.
func (it *Iterator[T]) Next(ctx context.Context) (T, error) {
	var zero T

	if it.fetcher == nil {
		return zero, ErrPageFetcherRequired
	}

	for {
		if it.done || (it.limit > 0 && it.yielded >= it.limit) {
			it.done = true

			return zero, ErrNoMoreItems
		}

		if len(it.buffer) > 0 {
			raw := it.buffer[0]
			it.buffer = it.buffer[1:]

			var item T

			err := json.Unmarshal(raw, &item)
			if err != nil {
				return zero, fmt.Errorf("parsing item: %w", err)
			}

			it.yielded++

			return item, nil
		}

		if it.started && it.nextRef == "" {
			it.done = true

			return zero, ErrNoMoreItems
		}

		err := it.fetchNext(ctx)
		if err != nil {
			it.done = true

			return zero, err
		}
	}
}

// fetchNext pulls one more page into the buffer.
func (it *Iterator[T]) fetchNext(ctx context.Context) error {
	ref := it.nextRef
	it.started = true

	body, err := it.fetcher.FetchPage(ctx, ref)
	if err != nil {
		return err
	}

	var page map[string]json.RawMessage

	err = json.Unmarshal(body, &page)
	if err != nil {
		return fmt.Errorf("parsing page: %w", err)
	}

	next, err := it.config.Next(page)
	if err != nil {
		return err
	}

	if next != "" && next == ref {
		return fmt.Errorf("%w: next reference %q repeats the reference that fetched it", ErrPagingCycle, next)
	}

	it.nextRef = next

	items, err := it.config.items(page)
	if err != nil {
		return err
	}

	it.buffer = items

	return nil
}

// All drains the remaining sequence into a slice, honoring the limit.
func (it *Iterator[T]) All(ctx context.Context) ([]T, error) {
	var items []T

	for {
		item, err := it.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return items, nil
			}

			return items, err
		}

		items = append(items, item)
	}
}

// ForEach applies fn to every remaining item, stopping on the first error.
func (it *Iterator[T]) ForEach(ctx context.Context, fn func(item T) error) error {
	for {
		item, err := it.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return nil
			}

			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}
}

// PageResult carries one streamed page or the error that ended the stream.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// Stream sends pages over a channel as they are consumed. The channel is
// unbuffered, so at most one page is fetched ahead of the receiver; the
// stream stays lazy. The goroutine exits when the sequence ends, an error
// occurs, or ctx is cancelled.
func Stream[T any](ctx context.Context, fetcher PageFetcher, first string, config PageConfig, limit int) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		send := func(result PageResult[T]) bool {
			select {
			case results <- result:
				return true
			case <-ctx.Done():
				return false
			}
		}

		it := NewIterator[T](fetcher, first, config, limit)

		var page []T

		for {
			item, err := it.Next(ctx)
			if errors.Is(err, ErrNoMoreItems) {
				if len(page) > 0 {
					send(PageResult[T]{Items: page})
				}

				return
			}

			if err != nil {
				send(PageResult[T]{Err: err})

				return
			}

			page = append(page, item)

			// A drained buffer marks a page boundary.
			if len(it.buffer) == 0 {
				if !send(PageResult[T]{Items: page}) {
					return
				}

				page = nil
			}
		}
	}()

	return results
}
