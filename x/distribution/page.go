package distribution

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/meteorroute/feeroute/errors"
)

// PageHash computes the commitment over a page: sha256 of the page
// index as 8 little-endian bytes, followed by each investor's stream
// reference and address in declared order. Binding the contents to a
// hash produced off the hot path prevents substitution of investors
// within a page by whoever carries the call.
func PageHash(pageIndex uint64, investors []*InvestorRef) []byte {
	h := sha256.New()
	var index [8]byte
	binary.LittleEndian.PutUint64(index[:], pageIndex)
	h.Write(index[:])
	for _, inv := range investors {
		h.Write(inv.Stream)
		h.Write(inv.Investor)
	}
	return h.Sum(nil)
}

// validatePages checks that the submitted pages are a contiguous
// continuation of the cursor and that every page matches its declared
// commitment. Returns the cursor value after consuming all pages.
func validatePages(cursor uint64, pages []*Page) (uint64, error) {
	expected := cursor
	for _, page := range pages {
		if page.PageIndex != expected {
			return 0, errors.Wrapf(ErrInvalidPagination,
				"page index %d, cursor expects %d", page.PageIndex, expected)
		}
		if computed := PageHash(page.PageIndex, page.Investors); !bytes.Equal(page.PageHash, computed) {
			return 0, errors.Wrapf(ErrInvalidPagination, "page %d hash mismatch", page.PageIndex)
		}
		next := expected + 1
		if next < expected {
			return 0, errors.Wrap(errors.ErrOverflow, "pagination cursor")
		}
		expected = next
	}
	return expected, nil
}
