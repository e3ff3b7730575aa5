package detail

import (
	"net/url"
	"strings"

	"github.com/go-faster/errors"
)

// Target identifies the record a controller mounts. It is resolved once from
// the caller's input, a URL path or CLI arguments, and never re-inspected.
type Target struct {
	// Collection is the plural entity name, e.g. "orders".
	Collection string
	// ID is empty when the input named no record.
	ID string
}

// TargetFromPath resolves paths such as "/orders/ORD-1" or
// "/dashboard/products/3/edit". The segment after the first known collection
// name is the id.
func TargetFromPath(p string, collections ...string) (Target, error) {
	segs := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	for i, seg := range segs {
		if !contains(collections, seg) {
			continue
		}
		t := Target{Collection: seg}
		if i+1 < len(segs) {
			id, err := url.PathUnescape(segs[i+1])
			if err != nil {
				return Target{}, errors.Wrapf(err, "unescape id %q", segs[i+1])
			}
			t.ID = strings.TrimSpace(id)
		}
		return t, nil
	}
	return Target{}, errors.Errorf("path %q names no known collection", p)
}

// TargetFromArgs resolves positional arguments where args[0], if present, is
// the id.
func TargetFromArgs(collection string, args []string) Target {
	t := Target{Collection: collection}
	if len(args) > 0 {
		t.ID = strings.TrimSpace(args[0])
	}
	return t
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
