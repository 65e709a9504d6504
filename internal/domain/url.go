package domain

import (
	"encoding/json"
	"net/url"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type URL struct {
	*url.URL
}

func (u URL) MarshalJSON() (text []byte, err error) {
	return json.Marshal(u.String())
}

func (u *URL) UnmarshalJSON(text []byte) (err error) {
	var raw string
	err = json.Unmarshal(text, &raw)
	if err != nil {
		return
	}
	*u, err = ParseURL(raw)
	return
}

func (u *URL) String() string {
	if u.URL == nil {
		return ""
	}
	return u.URL.String()
}

// ModifyQuery returns a copy of u with its query rewritten by mod. u itself is left untouched.
func (u *URL) ModifyQuery(mod func(query *url.Values)) URL {
	newURL := u.Clone()
	query := newURL.Query()
	mod(&query)
	newURL.RawQuery = query.Encode()
	return newURL
}

func (u *URL) Clone() URL {
	if u.URL == nil {
		return URL{&url.URL{}}
	}
	inner := *u.URL
	if u.URL.User != nil {
		user := *u.URL.User
		inner.User = &user
	}
	return URL{&inner}
}

func ParseURL(text string) (u URL, err error) {
	p, err := url.Parse(text)
	u = URL{p}
	return
}

// NormalizeURL makes URLs that differ only in query parameter order (or a
// trailing slash) compare equal. Keys are sorted, and so are the values of
// repeated keys.
func NormalizeURL(text string) (normalized string, err error) {
	u, err := url.Parse(text)
	if err != nil {
		return
	}
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return
	}
	keys := maps.Keys(query)
	slices.Sort(keys)
	pairs := make([]string, 0, len(query))
	for _, key := range keys {
		values := slices.Clone(query[key])
		slices.Sort(values)
		for _, value := range values {
			pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
		}
	}
	u.RawQuery = strings.Join(pairs, "&")
	u.ForceQuery = false
	normalized = strings.TrimRight(u.String(), "/")
	return
}
