package terrascope_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

type testItem struct {
	ID string `json:"id"`
}

var testPageConfig = terrascope.PageConfig{
	ItemsKey: "features",
	LinksKey: "_links",
	NextKey:  "_next",
}

// pageServer serves canned pages keyed by reference and counts fetches.
type pageServer struct {
	pages   map[string]string
	fetched []string
}

func (s *pageServer) FetchPage(ctx context.Context, ref string) ([]byte, error) {
	s.fetched = append(s.fetched, ref)

	page, ok := s.pages[ref]
	if !ok {
		return nil, fmt.Errorf("no page for %q", ref)
	}

	return []byte(page), nil
}

func twoPageServer() *pageServer {
	return &pageServer{pages: map[string]string{
		"page1": `{"features":[{"id":"a"},{"id":"b"}],"_links":{"_next":"page2"}}`,
		"page2": `{"features":[{"id":"c"}],"_links":{}}`,
	}}
}

//nolint:funlen // Table cases cover limit and ordering semantics
func TestIterator_Next(t *testing.T) {
	t.Parallel()
	t.Run("yields items in server order across pages", func(t *testing.T) {
		t.Parallel()

		server := twoPageServer()
		iterator := terrascope.NewIterator[testItem](server, "page1", testPageConfig, 0)

		var ids []string

		for {
			item, err := iterator.Next(context.Background())
			if err != nil {
				require.ErrorIs(t, err, terrascope.ErrNoMoreItems)

				break
			}

			ids = append(ids, item.ID)
		}

		assert.Equal(t, []string{"a", "b", "c"}, ids)
		assert.Equal(t, []string{"page1", "page2"}, server.fetched)
	})

	t.Run("limit stops early without fetching further pages", func(t *testing.T) {
		t.Parallel()

		server := twoPageServer()
		iterator := terrascope.NewIterator[testItem](server, "page1", testPageConfig, 2)

		items, err := iterator.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, items, 2)

		// The second page was never needed.
		assert.Equal(t, []string{"page1"}, server.fetched)
	})

	t.Run("limit larger than total yields everything", func(t *testing.T) {
		t.Parallel()

		server := twoPageServer()
		iterator := terrascope.NewIterator[testItem](server, "page1", testPageConfig, 10)

		items, err := iterator.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("pages fetched lazily one at a time", func(t *testing.T) {
		t.Parallel()

		server := twoPageServer()
		iterator := terrascope.NewIterator[testItem](server, "page1", testPageConfig, 0)

		_, err := iterator.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"page1"}, server.fetched)

		_, err = iterator.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"page1"}, server.fetched)

		_, err = iterator.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"page1", "page2"}, server.fetched)
	})

	t.Run("exhausted iterator keeps returning ErrNoMoreItems", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{pages: map[string]string{
			"page1": `{"features":[{"id":"a"}]}`,
		}}
		iterator := terrascope.NewIterator[testItem](server, "page1", testPageConfig, 0)

		_, err := iterator.Next(context.Background())
		require.NoError(t, err)

		for range 3 {
			_, err = iterator.Next(context.Background())
			require.ErrorIs(t, err, terrascope.ErrNoMoreItems)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{pages: map[string]string{
			"page1": `{"features":[]}`,
		}}
		iterator := terrascope.NewIterator[testItem](server, "page1", testPageConfig, 0)

		assert.True(t, iterator.HasNext())

		_, err := iterator.Next(context.Background())
		require.ErrorIs(t, err, terrascope.ErrNoMoreItems)
		assert.False(t, iterator.HasNext())
	})

	t.Run("repeated next reference fails with cycle error", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{pages: map[string]string{
			"page1": `{"features":[{"id":"a"}],"_links":{"_next":"page1"}}`,
		}}
		iterator := terrascope.NewIterator[testItem](server, "page1", testPageConfig, 0)

		_, err := iterator.Next(context.Background())
		require.ErrorIs(t, err, terrascope.ErrPagingCycle)
		assert.Contains(t, err.Error(), "page1")
	})

	t.Run("two iterators over the same collection are independent", func(t *testing.T) {
		t.Parallel()

		first := terrascope.NewIterator[testItem](twoPageServer(), "page1", testPageConfig, 0)
		second := terrascope.NewIterator[testItem](twoPageServer(), "page1", testPageConfig, 0)

		itemA, err := first.Next(context.Background())
		require.NoError(t, err)

		itemB, err := second.Next(context.Background())
		require.NoError(t, err)

		assert.Equal(t, itemA.ID, itemB.ID)
	})

	t.Run("nil fetcher", func(t *testing.T) {
		t.Parallel()

		iterator := terrascope.NewIterator[testItem](nil, "page1", testPageConfig, 0)

		_, err := iterator.Next(context.Background())
		require.ErrorIs(t, err, terrascope.ErrPageFetcherRequired)
	})
}

func TestIterator_HasNext(t *testing.T) {
	t.Parallel()

	server := twoPageServer()
	iterator := terrascope.NewIterator[testItem](server, "page1", testPageConfig, 2)

	assert.True(t, iterator.HasNext())

	_, err := iterator.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, iterator.HasNext())

	_, err = iterator.Next(context.Background())
	require.NoError(t, err)

	// The limit is satisfied.
	assert.False(t, iterator.HasNext())
}

func TestIterator_ForEach(t *testing.T) {
	t.Parallel()
	t.Run("visits every item", func(t *testing.T) {
		t.Parallel()

		iterator := terrascope.NewIterator[testItem](twoPageServer(), "page1", testPageConfig, 0)

		var ids []string

		err := iterator.ForEach(context.Background(), func(item testItem) error {
			ids = append(ids, item.ID)

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ids)
	})

	t.Run("stops on callback error", func(t *testing.T) {
		t.Parallel()

		iterator := terrascope.NewIterator[testItem](twoPageServer(), "page1", testPageConfig, 0)

		calls := 0
		err := iterator.ForEach(context.Background(), func(item testItem) error {
			calls++

			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, calls)
	})
}

func TestNewIteratorFromPage(t *testing.T) {
	t.Parallel()

	server := &pageServer{pages: map[string]string{
		"page2": `{"features":[{"id":"c"}]}`,
	}}

	firstPage := []byte(`{"features":[{"id":"a"},{"id":"b"}],"_links":{"_next":"page2"}}`)

	iterator, err := terrascope.NewIteratorFromPage[testItem](server, firstPage, testPageConfig, 0)
	require.NoError(t, err)

	items, err := iterator.All(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[2].ID)

	// Only the continuation page hit the fetcher.
	assert.Equal(t, []string{"page2"}, server.fetched)
}

func TestPageConfig_Next(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page string
		want string
	}{
		{"bare string link", `{"_links":{"_next":"page2"}}`, "page2"},
		{"href object link", `{"_links":{"_next":{"href":"page2"}}}`, "page2"},
		{"missing links object", `{"features":[]}`, ""},
		{"missing next key", `{"_links":{"self":"page1"}}`, ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var page map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(testCase.page), &page))

			next, err := testPageConfig.Next(page)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, next)
		})
	}
}

func TestStream(t *testing.T) {
	t.Parallel()
	t.Run("delivers pages in order", func(t *testing.T) {
		t.Parallel()

		results := terrascope.Stream[testItem](context.Background(), twoPageServer(), "page1", testPageConfig, 0)

		var pages [][]string

		for result := range results {
			require.NoError(t, result.Err)

			var ids []string
			for _, item := range result.Items {
				ids = append(ids, item.ID)
			}

			pages = append(pages, ids)
		}

		assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, pages)
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{pages: map[string]string{
			"page1": `{"features":[{"id":"a"}],"_links":{"_next":"missing"}}`,
		}}

		results := terrascope.Stream[testItem](context.Background(), server, "page1", testPageConfig, 0)

		var sawError bool

		for result := range results {
			if result.Err != nil {
				sawError = true
			}
		}

		assert.True(t, sawError)
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := terrascope.Stream[testItem](ctx, twoPageServer(), "page1", testPageConfig, 0)

		for result := range results {
			if result.Err != nil {
				assert.ErrorIs(t, result.Err, context.Canceled)
			}
		}
	})
}
