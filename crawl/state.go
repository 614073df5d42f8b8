package crawl

// crawlState holds the traversal state for a single crawl invocation.
// A fresh value is created at the start of every top-level call and passed
// through the traversal; nothing survives across invocations.
//
// Invariants: visited is a subset of seen at all times, and a URL enters the
// frontier or next-level accumulator only if absent from seen at enqueue
// time (seen gains the entry atomically with the enqueue).
type crawlState struct {
	// visited holds normalized URLs actually fetched or explicitly skipped.
	visited map[string]struct{}

	// seen holds every normalized URL ever enqueued.
	seen map[string]struct{}

	// frontier holds the current depth level, drained front to back.
	frontier []string

	// nextLevel accumulates links discovered while draining the current
	// level.
	nextLevel []string

	depth        int
	pagesVisited int
}

// newCrawlState returns state seeded with the normalized start URL.
func newCrawlState(startURL string) *crawlState {
	return &crawlState{
		visited:  make(map[string]struct{}),
		seen:     map[string]struct{}{startURL: {}},
		frontier: []string{startURL},
	}
}

// pop removes and returns the next URL of the current level.
func (s *crawlState) pop() (string, bool) {
	if len(s.frontier) == 0 {
		return "", false
	}
	u := s.frontier[0]
	s.frontier = s.frontier[1:]
	return u, true
}

// markVisited records the URL (normalized) as visited and seen.
func (s *crawlState) markVisited(rawURL string) {
	normalized, ok := Normalize(rawURL)
	if !ok {
		return
	}
	s.visited[normalized] = struct{}{}
	s.seen[normalized] = struct{}{}
}

func (s *crawlState) isVisited(normalizedURL string) bool {
	_, ok := s.visited[normalizedURL]
	return ok
}

// enqueue adds a normalized URL to the next-level accumulator unless it has
// been seen before. Returns true if the URL was new.
func (s *crawlState) enqueue(normalizedURL string) bool {
	if _, ok := s.seen[normalizedURL]; ok {
		return false
	}
	s.seen[normalizedURL] = struct{}{}
	s.nextLevel = append(s.nextLevel, normalizedURL)
	return true
}

// advanceIfLevelDone swaps in the next-level accumulator as the new frontier
// once the current level is exhausted, advancing depth by one.
func (s *crawlState) advanceIfLevelDone() {
	if len(s.frontier) > 0 {
		return
	}
	s.frontier = s.nextLevel
	s.nextLevel = nil
	s.depth++
}
