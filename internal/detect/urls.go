package detect

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var (
	reAbsoluteURL = regexp.MustCompile(`(?i)https?://(?:[-\w.])+(?:[:\d]+)?(?:/(?:[\w/_.\-])*(?:\?(?:[\w&=%.\-])*)?(?:#(?:\w*))?)?`)
	reBareDomain  = regexp.MustCompile(`(?i)www\.[\w\-]+\.(?:de|at|ch|com|org|net|info)(?:/[\w/_.\-]*)?`)
)

// germanTLDs marks domains from German-speaking regions; those get repaired
// when malformed and ordered first.
var germanTLDs = []string{".de", ".at", ".ch"}

// ExtractURLs pulls URL-like strings out of free text, in first-seen order,
// deduplicated. Bare www domains are kept as written; repair happens in
// ValidateGermanURLs.
func ExtractURLs(text string) []string {
	urls := []string{}
	seen := map[string]struct{}{}
	for _, re := range []*regexp.Regexp{reAbsoluteURL, reBareDomain} {
		for _, match := range re.FindAllString(text, -1) {
			match = strings.TrimRight(match, ".,;")
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			urls = append(urls, match)
		}
	}
	return urls
}

// ValidateGermanURLs keeps candidates that already parse as absolute URLs and
// repairs German-region candidates by prefixing https://. The result is
// ordered with German-region domains first, otherwise stable.
func ValidateGermanURLs(candidates []string) []string {
	valid := []string{}
	for _, c := range candidates {
		switch {
		case isAbsoluteURL(c):
			valid = append(valid, c)
		case hasGermanTLD(c):
			repaired := c
			if !strings.HasPrefix(c, "http://") && !strings.HasPrefix(c, "https://") {
				repaired = "https://" + c
			}
			if isAbsoluteURL(repaired) {
				valid = append(valid, repaired)
			}
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return hasGermanTLD(valid[i]) && !hasGermanTLD(valid[j])
	})
	return valid
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && strings.Contains(u.Host, ".")
}

func hasGermanTLD(raw string) bool {
	lower := strings.ToLower(raw)
	for _, tld := range germanTLDs {
		if strings.Contains(lower, tld) {
			return true
		}
	}
	return false
}
