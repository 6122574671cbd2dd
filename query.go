package navigate

import (
	"net/url"
	"sort"
	"strings"
)

// Params holds the decoded query parameters of a path.
type Params map[string]string

// ValidPath reports whether s is structured enough to be treated as a path.
// Strings containing whitespace or control characters, or anything net/url
// refuses to parse (bad percent escapes, for example), are not.
//
//	ValidPath("/home?tab=1")       // true
//	ValidPath("www.example.com")   // true
//	ValidPath("this is not a path") // false
func ValidPath(s string) bool {
	_, ok := parsePath(s)
	return ok
}

func parsePath(s string) (*url.URL, bool) {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c <= ' ' || c == 0x7f {
			return nil, false
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	return u, true
}

// EncodeQuery appends params to basePath as a percent-encoded query string.
//
// Keys are written in sorted order and spaces are escaped as %20. A query
// already present on basePath is replaced; a fragment is kept. With no
// params the result is basePath without any query. The second result is
// false when basePath is not a valid path, in which case callers treat the
// result as the empty string.
//
//	EncodeQuery("/home", Params{"alert": "Pizza is here!"})
//	// "/home?alert=Pizza%20is%20here%21", true
func EncodeQuery(basePath string, params Params) (string, bool) {
	if !ValidPath(basePath) {
		return "", false
	}

	base, fragment := basePath, ""
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base, fragment = base[:i], base[i:]
	}
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}

	return withQuery(base, params) + fragment, true
}

// withQuery appends params to base in sorted key order. Empty params add
// nothing.
func withQuery(base string, params Params) string {
	if len(params) == 0 {
		return base
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(k))
		b.WriteByte('=')
		b.WriteString(escape(params[k]))
	}
	return b.String()
}

// DecodeQuery returns the query parameters carried by path. The result is
// never nil: a path without a query, or one that is not a valid path,
// yields an empty map.
//
// Pairs are split on '&' only, so a ';' is part of the value. A pair whose
// key or value has a bad percent escape is skipped. When a key repeats, the
// last occurrence wins; a bare key such as "?flag" carries no value and
// removes any earlier value for that key.
func DecodeQuery(path string) Params {
	params := Params{}

	u, ok := parsePath(path)
	if !ok || u.RawQuery == "" {
		return params
	}

	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, hasValue := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		if !hasValue {
			delete(params, key)
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		params[key] = value
	}
	return params
}

// StripQuery returns the decoded path component of path, without query or
// fragment. The second result is false when path is not a valid path.
//
//	StripQuery("/home?tab=1") // "/home", true
func StripQuery(path string) (string, bool) {
	u, ok := parsePath(path)
	if !ok {
		return "", false
	}
	return u.Path, true
}

// basePath is StripQuery with the failure coalesced to "".
func basePath(path string) string {
	p, _ := StripQuery(path)
	return p
}

// canonicalPath identifies where path leads: its base path plus its query
// parameters in sorted, re-encoded form. Two paths with the same key run the
// same route with the same params.
func canonicalPath(path string) string {
	return withQuery(basePath(path), DecodeQuery(path))
}

func escape(s string) string {
	// QueryEscape only produces '+' for spaces; a literal plus becomes %2B.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
