package deck

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// IDRegistry tracks canvas ids minted by this engine during deduplication,
// keyed by the id it replaced. Looking up the base of an id goes through the
// registry first; the suffix pattern is only consulted for ids the registry
// has lost track of (a deck reloaded from persistence), and the tag format
// is distinctive enough that externally supplied ids will not match it.
type IDRegistry struct {
	base map[string]string // minted id -> original id
}

// dedupTag matches the suffix this engine appends when rewriting a
// duplicate canvas id: "_r" plus six hex characters.
var dedupTag = regexp.MustCompile(`_r[0-9a-f]{6}$`)

func newIDRegistry() *IDRegistry {
	return &IDRegistry{base: make(map[string]string)}
}

// Assign mints a fresh id for a duplicate of orig and records the mapping.
// The taken set holds every id already present in the deck; the minted id is
// guaranteed not to collide with it.
func (r *IDRegistry) Assign(orig string, taken map[string]bool) string {
	base := r.Base(orig)
	for {
		id := base + "_r" + uuid.NewString()[:6]
		if !taken[id] {
			r.base[id] = base
			return id
		}
	}
}

// Base resolves an id back to the original id it was minted from. Ids this
// engine never touched resolve to themselves.
func (r *IDRegistry) Base(id string) string {
	for {
		orig, ok := r.base[id]
		if !ok {
			break
		}
		id = orig
	}
	if m := dedupTag.FindStringIndex(id); m != nil {
		stripped := id[:m[0]]
		if strings.TrimSpace(stripped) != "" {
			return stripped
		}
	}
	return id
}
