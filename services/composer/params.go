package composer

import (
	"net/url"
	"regexp"
	"strings"

	"dpiportal/models"
)

var placeholderRe = regexp.MustCompile(`\{([^{}/]+)\}`)

// ExtractPathParams returns the distinct {name} placeholders of template in
// order of first appearance.
func ExtractPathParams(template string) []string {
	matches := placeholderRe.FindAllStringSubmatch(template, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// SubstitutePath replaces each {name} with values[name] verbatim. Placeholders
// without a supplied value are left in place.
func SubstitutePath(template string, values map[string]string) string {
	path := template
	for _, name := range ExtractPathParams(template) {
		if v, ok := values[name]; ok {
			path = strings.ReplaceAll(path, "{"+name+"}", v)
		}
	}
	return path
}

// BuildURL joins base and path and appends the enabled query parameters.
func BuildURL(base, path string, query []models.KeyValue) string {
	u := strings.TrimRight(base, "/")
	if path != "" && !strings.HasPrefix(path, "/") {
		u += "/"
	}
	u += path

	q := url.Values{}
	for _, kv := range query {
		if kv.Enabled && strings.TrimSpace(kv.Key) != "" {
			q.Add(kv.Key, kv.Value)
		}
	}
	if len(q) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + q.Encode()
}
