package cli

import (
	"regexp"
	"strings"
	"unicode"

	"dpiportal/models"
	"dpiportal/services/access"
)

var typeDecl = regexp.MustCompile(`(?m)^\s*export\s+(?:type|interface)\s+([A-Z][A-Za-z0-9]*?)(Request|Response)\b`)

// acronyms are uppercased in page titles.
var acronyms = map[string]bool{
	"ai": true, "bvn": true, "dpi": true, "id": true, "ivr": true,
	"nin": true, "otp": true, "sms": true, "url": true, "ussd": true,
}

// Endpoint is one Request/Response pair, named without the suffix.
type Endpoint struct {
	Name        string
	HasRequest  bool
	HasResponse bool
}

// ScanEndpoints finds exported *Request and *Response types, pairing them by
// name in order of first appearance.
func ScanEndpoints(src string) []Endpoint {
	var endpoints []Endpoint
	index := map[string]int{}
	for _, m := range typeDecl.FindAllStringSubmatch(src, -1) {
		name, kind := m[1], m[2]
		i, ok := index[name]
		if !ok {
			i = len(endpoints)
			index[name] = i
			endpoints = append(endpoints, Endpoint{Name: name})
		}
		if kind == "Request" {
			endpoints[i].HasRequest = true
		} else {
			endpoints[i].HasResponse = true
		}
	}
	return endpoints
}

// splitWords breaks a PascalCase identifier into words; runs of capitals stay
// together ("BVNStatus" -> BVN, Status).
func splitWords(name string) []string {
	runes := []rune(name)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

// serviceOf matches the longest leading run of words against the known
// services and returns the service and the remaining words.
func serviceOf(words []string) (string, []string) {
	for n := min(3, len(words)); n > 0; n-- {
		candidate := strings.ToLower(strings.Join(words[:n], "-"))
		for _, s := range access.AllServices {
			if s == candidate {
				return s, words[n:]
			}
		}
	}
	return "", words
}

func titleWord(w string) string {
	lw := strings.ToLower(w)
	if acronyms[lw] {
		return strings.ToUpper(lw)
	}
	return strings.ToUpper(lw[:1]) + lw[1:]
}

func kebab(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return strings.Join(out, "-")
}

// Pages derives one documentation page per endpoint under basePath.
func Pages(endpoints []Endpoint, basePath string) []models.NavigationPage {
	basePath = "/" + strings.Trim(basePath, "/")
	if basePath == "/" {
		basePath = ""
	}

	pages := make([]models.NavigationPage, 0, len(endpoints))
	for _, e := range endpoints {
		words := splitWords(e.Name)
		service, rest := serviceOf(words)

		titleWords := make([]string, len(words))
		for i, w := range words {
			titleWords[i] = titleWord(w)
		}

		path := basePath
		if service != "" {
			path += "/" + service
		}
		if len(rest) > 0 {
			path += "/" + kebab(rest)
		}

		pages = append(pages, models.NavigationPage{
			Title:   strings.Join(titleWords, " "),
			Path:    path,
			Service: service,
		})
	}
	return pages
}

// MenuGroup is the menu section for one service.
type MenuGroup struct {
	Service string                  `yaml:"service"`
	Title   string                  `yaml:"title"`
	Pages   []models.NavigationPage `yaml:"pages"`
}

// Menu is written to menu.yaml.
type Menu struct {
	Groups []MenuGroup `yaml:"groups"`
}

const generalGroup = "general"

// BuildMenu groups pages by service in order of first appearance. Pages
// without a service go to the "general" group.
func BuildMenu(pages []models.NavigationPage) Menu {
	var menu Menu
	index := map[string]int{}
	for _, p := range pages {
		key := p.Service
		if key == "" {
			key = generalGroup
		}
		i, ok := index[key]
		if !ok {
			i = len(menu.Groups)
			index[key] = i
			words := strings.Split(key, "-")
			for j, w := range words {
				words[j] = titleWord(w)
			}
			menu.Groups = append(menu.Groups, MenuGroup{Service: key, Title: strings.Join(words, " ")})
		}
		menu.Groups[i].Pages = append(menu.Groups[i].Pages, p)
	}
	return menu
}
