package cache

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// KeySeparator delimits cache key segments.
const KeySeparator = ":"

// Key namespaces. Entity lookups, per-owner collection lookups, and per-owner
// search results are invalidated independently, so each gets its own prefix.
const (
	KeyEntity     = "entity"
	KeyListByUser = "listByUser"
	KeySearch     = "search"
)

// Entity type tokens used as the second key segment.
const (
	EntityCategory = "category"
	EntityPriority = "priority"
	EntityUser     = "user"
)

// KeySerializer builds a cache key from a namespace plus arbitrary args.
// It is responsible for producing stable keys across calls and processes.
type KeySerializer interface {
	SerializeKey(namespace string, args ...any) string
}

// catalogKeySerializer joins the namespace and args with KeySeparator,
// normalizing string segments so free-form input (search fragments, emails)
// cannot smuggle separators or characters a distributed backend rejects.
type catalogKeySerializer struct{}

// NewKeySerializer creates the default catalog key serializer. It yields keys
// of the shape entity:category:42, listByUser:priority:7 and
// search:category:7:work.
func NewKeySerializer() KeySerializer {
	return catalogKeySerializer{}
}

func (catalogKeySerializer) SerializeKey(namespace string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, namespace)
	for _, arg := range args {
		parts = append(parts, serializeSegment(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func serializeSegment(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return NormalizeToken(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case uint64:
		return strconv.FormatUint(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return NormalizeToken(val.String())
	default:
		return NormalizeToken(fmt.Sprintf("%v", val))
	}
}

// NormalizeToken lowercases and trims a free-form string and hex-encodes
// every rune outside [a-z0-9.-] as "_<hex>_". Search is case-insensitive, so
// case variants of one fragment must share a key; beyond that the mapping is
// injective — the underscore never appears unescaped, so no two distinct
// lowered fragments produce the same token and no fragment can alias another
// key's cached result. Encoding also keeps keys inside the character set
// redis accepts and keeps prefix-based invalidation sound.
func NormalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', unicode.IsDigit(r), r == '.', r == '-':
			b.WriteRune(r)
		case unicode.IsLetter(r):
			// Non-ASCII letters pass through lowercased; they carry no
			// underscore, so injectivity holds.
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "_%x_", r)
		}
	}

	return b.String()
}

// EntityKey returns the single-entity cache key for an id lookup.
func EntityKey(s KeySerializer, entityType string, id int64) string {
	return s.SerializeKey(KeyEntity, entityType, id)
}

// ListByUserKey returns the collection cache key for an owner's full list.
func ListByUserKey(s KeySerializer, entityType string, userID int64) string {
	return s.SerializeKey(KeyListByUser, entityType, userID)
}

// SearchKey returns the cache key for an owner-scoped title search. A blank
// fragment is a valid key of its own: the unfiltered search result is cached
// separately from the listByUser entry so both live under uniform prefixes.
func SearchKey(s KeySerializer, entityType string, userID int64, fragment string) string {
	return s.SerializeKey(KeySearch, entityType, userID, fragment)
}

// SearchPrefix returns the prefix covering every search key cached for the
// given owner, used for wildcard invalidation.
func SearchPrefix(s KeySerializer, entityType string, userID int64) string {
	return s.SerializeKey(KeySearch, entityType, userID) + KeySeparator
}
