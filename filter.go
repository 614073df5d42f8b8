package wikiharvest

import "regexp"

// PathFilter evaluates a URL path against configured allow/deny regular
// expression sets. It is immutable for the lifetime of an engine instance.
//
// The two sets use different match modes on purpose: denied patterns match
// anywhere in the path, allowed patterns must match starting at the
// beginning of the path.
type PathFilter struct {
	allowed []*regexp.Regexp
	denied  []*regexp.Regexp
}

// NewPathFilter compiles the allow/deny pattern sets into a PathFilter.
func NewPathFilter(allowed, denied []string) (*PathFilter, error) {
	f := &PathFilter{}
	for _, pattern := range allowed {
		// Anchor at the start of the path without requiring a full match.
		re, err := regexp.Compile("^(?:" + pattern + ")")
		if err != nil {
			return nil, Errorf(EINVALID, "invalid allowed path pattern %q: %v", pattern, err)
		}
		f.allowed = append(f.allowed, re)
	}
	for _, pattern := range denied {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid denied path pattern %q: %v", pattern, err)
		}
		f.denied = append(f.denied, re)
	}
	return f, nil
}

// Allowed reports whether path passes the filter. Denied patterns always
// win; with no allowed patterns configured everything else passes; otherwise
// at least one allowed pattern must match at the start of the path.
// A nil filter allows everything.
func (f *PathFilter) Allowed(path string) bool {
	if f == nil {
		return true
	}
	for _, re := range f.denied {
		if re.MatchString(path) {
			return false
		}
	}
	if len(f.allowed) == 0 {
		return true
	}
	for _, re := range f.allowed {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
