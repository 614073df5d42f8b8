package wikiharvest

import (
	"bufio"
	"io"
	"strings"
)

// SourceKind classifies a configured source URL.
type SourceKind string

// Source kinds. Classification happens once, at the list-parsing boundary;
// downstream code switches on the kind and never re-parses prefixes.
const (
	SourceKindLink SourceKind = "links"
	SourceKindGit  SourceKind = "git"
	SourceKindSSO  SourceKind = "sso"
)

// Source is a classified source URL with its recognized prefix stripped.
type Source struct {
	Kind SourceKind
	URL  string
}

// Source-list prefixes recognized by ParseSource.
const (
	gitPrefix = "git-"
	ssoPrefix = "sso-"
)

// ParseSource classifies a raw source-list entry by its literal string
// prefix. Entries starting with "git-" are git repositories, entries
// starting with "sso-" are SSO-protected sites, everything else is a plain
// link. The recognized prefix is stripped from the returned URL.
func ParseSource(raw string) Source {
	if rest, ok := strings.CutPrefix(raw, gitPrefix); ok {
		return Source{Kind: SourceKindGit, URL: rest}
	}
	if rest, ok := strings.CutPrefix(raw, ssoPrefix); ok {
		return Source{Kind: SourceKindSSO, URL: rest}
	}
	return Source{Kind: SourceKindLink, URL: raw}
}

// ParseSourceList reads a newline-delimited source list. Blank lines and
// lines starting with "#" are ignored. Each remaining line's content before
// the first comma is the URL; a trailing depth-specifier field is read and
// discarded.
func ParseSourceList(r io.Reader) ([]Source, error) {
	var sources []Source
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		url, _, _ := strings.Cut(line, ",")
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		sources = append(sources, ParseSource(url))
	}
	if err := scanner.Err(); err != nil {
		return nil, Errorf(EINVALID, "reading source list: %v", err)
	}
	return sources, nil
}
