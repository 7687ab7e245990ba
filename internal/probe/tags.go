package probe

import (
	"sort"
	"strings"
)

// Tags maps lower-cased tag names to values. ffprobe reports keys in
// whatever casing the container stored them (TITLE, title, Title), so the
// map is normalized once by [NormalizeTags] and every lookup lower-cases
// its key.
type Tags map[string]string

// NormalizeTags lower-cases every key of raw. When several source keys fold
// to the same name, a non-empty value under an already lower-case key wins,
// then the first non-empty value in sorted key order.
func NormalizeTags(raw map[string]string) Tags {
	out := make(Tags, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == strings.ToLower(k) {
			out[k] = raw[k]
		}
	}
	for _, k := range keys {
		lk := strings.ToLower(k)
		if lk == k {
			continue
		}
		if cur, ok := out[lk]; !ok || (cur == "" && raw[k] != "") {
			out[lk] = raw[k]
		}
	}
	return out
}

// Get returns the value for key regardless of casing, or "".
func (t Tags) Get(key string) string {
	return t[strings.ToLower(key)]
}

// Keys returns the tag names in sorted order.
func (t Tags) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
