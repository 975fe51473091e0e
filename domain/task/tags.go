package task

import "strings"

// TagSeparator delimits tags in the stored tags column and in user input.
const TagSeparator = ","

// ParseTags splits a delimited tag string into a set. Blank entries are
// dropped and duplicates (compared case-insensitively) keep their first
// spelling.
func ParseTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, part := range strings.Split(value, TagSeparator) {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// JoinTags renders a tag set into its stored form.
func JoinTags(tags []string) string {
	return strings.Join(ParseTags(strings.Join(tags, TagSeparator)), TagSeparator)
}

// HasAnyTag reports whether have and want share at least one tag, ignoring case.
func HasAnyTag(have, want []string) bool {
	if len(have) == 0 || len(want) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(have))
	for _, tag := range have {
		set[strings.ToLower(tag)] = struct{}{}
	}
	for _, tag := range want {
		if _, ok := set[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}
