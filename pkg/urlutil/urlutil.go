package urlutil

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/idna"

	"github.com/kdevan/doccrawl/pkg/failure"
)

// InvalidURLError is returned by Canonicalise when the input cannot be
// parsed into a usable URL, or uses a scheme the crawler does not fetch
// (mailto:, javascript:, tel:, data:, and anything other than http/https).
type InvalidURLError struct {
	Message string
}

func (e *InvalidURLError) Error() string {
	return e.Message
}

func (e *InvalidURLError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// trackingParamPrefixes are query-key prefixes dropped unconditionally,
// compared case-insensitively.
var trackingParamPrefixes = []string{"utm_"}

// trackingParamKeys are exact query keys dropped unconditionally,
// compared case-insensitively.
var trackingParamKeys = map[string]bool{
	"fbclid": true,
	"gclid":  true,
	"mc_eid": true,
	"_ga":    true,
}

// Canonicalise maps any input URL spelling to a single stable string form.
//
// Steps, in order: (1) resolve relative against base if present; (2)
// lowercase scheme, reject anything not http/https; (3) IDNA-encode and
// lowercase the host, strip trailing dots; (4) drop the port if it is the
// scheme's default; (5) segment-normalise the path (., .. resolved,
// duplicate slashes collapsed, leading / enforced); (6) drop tracking query
// keys and sort the remainder by (key, value); (7) drop the fragment.
//
// Canonicalise(Canonicalise(u)) == Canonicalise(u) for every output this
// function produces.
func Canonicalise(raw string, base *url.URL) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidURLError{Message: "unparseable URL: " + err.Error()}
	}

	if base != nil {
		parsed = base.ResolveReference(parsed)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", &InvalidURLError{Message: "unsupported scheme: " + parsed.Scheme}
	}
	parsed.Scheme = scheme

	host, err := canonicaliseHost(parsed)
	if err != nil {
		return "", err
	}
	parsed.Host = host

	parsed.Path = normalisePath(parsed.Path)
	parsed.RawQuery = canonicaliseQuery(parsed.RawQuery)
	parsed.Fragment = ""
	parsed.RawFragment = ""

	return parsed.String(), nil
}

// canonicaliseHost IDNA-encodes and lowercases the hostname, strips
// trailing dots, and drops the port when it is the default for scheme.
func canonicaliseHost(u *url.URL) (string, error) {
	hostname := u.Hostname()
	port := u.Port()

	hostname = strings.TrimRight(hostname, ".")
	hostname = strings.ToLower(hostname)

	if hostname == "" {
		return "", &InvalidURLError{Message: "URL has no host"}
	}

	encoded, err := idna.Lookup.ToASCII(hostname)
	if err == nil {
		hostname = encoded
	}
	// IDNA failures (e.g. plain ASCII hosts already valid, or malformed
	// labels) fall back to the lowercased original — this mirrors the
	// teacher's "best-effort, never fatal on host quirks" stance.

	if port == "" {
		return hostname, nil
	}
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		return hostname, nil
	}
	return hostname + ":" + port, nil
}

// normalisePath resolves . and .. segments, collapses duplicate slashes,
// and enforces a leading slash.
func normalisePath(p string) string {
	if p == "" {
		return "/"
	}
	cleaned := path.Clean(p)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return cleaned
}

type queryPair struct {
	key, value string
}

// canonicaliseQuery drops tracking parameters and sorts the remaining
// (key, value) pairs lexicographically.
func canonicaliseQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	var pairs []queryPair
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			decodedKey = key
		}
		if isTrackingParam(decodedKey) {
			continue
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			decodedValue = value
		}
		pairs = append(pairs, queryPair{key: decodedKey, value: decodedValue})
	}

	if len(pairs) == 0 {
		return ""
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	values := url.Values{}
	for _, p := range pairs {
		values.Add(p.key, p.value)
	}
	return values.Encode()
}

// Resolve fills in an empty scheme or host on u from scheme/host, turning a
// document-relative URL (as parsed straight off an href/src attribute) into
// one absolute enough for Canonicalize. Already-absolute URLs pass through
// unchanged.
func Resolve(u url.URL, scheme string, host string) url.URL {
	if u.Host == "" {
		u.Host = host
	}
	if u.Scheme == "" {
		u.Scheme = scheme
	}
	return u
}

// Canonicalize is Canonicalise for callers that already have a url.URL
// rather than a raw string. Inputs that fail to canonicalise (unsupported
// scheme, no host) are returned unchanged — by this point the caller has
// already committed to treating u as a URL value, so there is no error
// return to push the failure into.
func Canonicalize(u url.URL) url.URL {
	canonical, err := Canonicalise(u.String(), nil)
	if err != nil {
		return u
	}
	parsed, err := url.Parse(canonical)
	if err != nil {
		return u
	}
	return *parsed
}

// FilterByHost keeps only the URLs whose host exactly matches host.
func FilterByHost(host string, urls []url.URL) []url.URL {
	filtered := make([]url.URL, 0, len(urls))
	for _, u := range urls {
		if u.Host == host {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

func isTrackingParam(key string) bool {
	lower := strings.ToLower(key)
	if trackingParamKeys[lower] {
		return true
	}
	for _, prefix := range trackingParamPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
