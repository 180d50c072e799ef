package sqlite

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/marketway"
)

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// hashLine computes an xxHash over the placement and items of a line and
// returns it as a hex string.
func hashLine(l *marketway.Line) string {
	d := xxhash.New()
	d.WriteString(l.Name)
	d.WriteString("\x00")
	d.WriteString(strconv.Itoa(l.Aisle))
	d.WriteString("\x00")
	d.WriteString(strconv.Itoa(l.Order))
	for _, item := range l.Items {
		d.WriteString("\x00")
		d.WriteString(item)
	}
	return hex.EncodeToString(d.Sum(nil))
}
