// Package idgen produces opaque identifiers prefixed by entity kind.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Entity kind prefixes.
const (
	PrefixRecipient   = "rec"
	PrefixGift        = "gift"
	PrefixContributor = "gc"
	PrefixIdea        = "idea"
)

// New returns "<prefix>_<suffix>" where suffix is the hex form of a random
// UUID. Collisions are not checked against the store.
func New(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
