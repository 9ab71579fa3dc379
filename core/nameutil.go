package core

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/igorsobreira/titlecase"
)

var slugifyRegex1 = regexp.MustCompile(`\(.*\)`)
var slugifyRegex2 = regexp.MustCompile(` - .+`)
var slugifyRegex3 = regexp.MustCompile(`[^a-z\d]`)
var slugifyRegex4 = regexp.MustCompile(`-+`)
var slugifyRegex5 = regexp.MustCompile(`^-|-$`)

func SlugifyName(name string) string {
	lower := strings.ToLower(name)
	noBrackets := slugifyRegex1.ReplaceAllString(lower, "")
	noSuffix := slugifyRegex2.ReplaceAllString(noBrackets, "")
	limitedChars := slugifyRegex3.ReplaceAllString(noSuffix, "-")
	noDuplicateDashes := slugifyRegex4.ReplaceAllString(limitedChars, "-")
	noLeadingTrailingDashes := slugifyRegex5.ReplaceAllString(noDuplicateDashes, "")
	return noLeadingTrailingDashes
}

// DisplayNameFromURL turns the file name of a manifest URL into a proper
// name, e.g. ".../skyFactory_four.json" becomes "Sky Factory Four".
func DisplayNameFromURL(manifestURL string) string {
	p := manifestURL
	if u, err := url.Parse(manifestURL); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return manifestURL
	}
	words := strings.Join(camelcase.Split(base), " ")
	words = strings.ReplaceAll(strings.ReplaceAll(words, " - ", " "), " _ ", " ")
	return titlecase.Title(strings.TrimSpace(words))
}
