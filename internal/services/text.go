package services

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9]+`)
)

// ExtractHashtags returns the lowercase hashtags in content, first
// occurrence order, without duplicates.
func ExtractHashtags(content string) []string {
	return uniqueLower(hashtagPattern.FindAllStringSubmatch(content, -1))
}

// ExtractMentions returns the lowercase @handles in content.
func ExtractMentions(content string) []string {
	return uniqueLower(mentionPattern.FindAllStringSubmatch(content, -1))
}

func uniqueLower(matches [][]string) []string {
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		v := strings.ToLower(m[1])
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// NormalizeHashtag lowercases a hashtag and drops the leading # and spaces.
func NormalizeHashtag(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// Slugify turns a name into a URL-safe slug.
func Slugify(s string) string {
	slug := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "item"
	}
	return slug
}
