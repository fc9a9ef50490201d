package client

import (
	"net/url"
	"strconv"

	"github.com/terrascope-io/terrascope-client/internal/constants"
)

// firstPageRef builds the reference for the first page of a collection.
// Later references come from the server verbatim.
func firstPageRef(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}

	return path + "?" + query.Encode()
}

// pageSizeValues returns query values asking for the default page size,
// clamped to the remaining limit so no oversized page is requested.
func pageSizeValues(limit int) url.Values {
	size := constants.DefaultPageSize
	if limit > 0 && limit < size {
		size = limit
	}

	return url.Values{"page_size": []string{strconv.Itoa(size)}}
}
