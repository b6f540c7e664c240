package enrich

import (
	"sort"
	"strings"

	"pulseMontreal/domain"
)

// Matcher maps free text onto the fixed tag taxonomy by deterministic
// keyword/substring matching. Built once from the taxonomy table at startup.
type Matcher struct {
	rules []rule
}

type rule struct {
	category string
	value    string
	keywords []string
}

func NewMatcher(entries []domain.TaxonomyEntry) *Matcher {
	rules := make([]rule, 0, len(entries))
	for _, entry := range entries {
		keywords := make([]string, 0, 4)
		for _, kw := range strings.Split(entry.Keywords, ",") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			continue
		}
		rules = append(rules, rule{
			category: entry.Category,
			value:    entry.Value,
			keywords: keywords,
		})
	}

	return &Matcher{rules: rules}
}

// Match returns the tag set for the given free-text fields, deduplicated and
// sorted by (category, value). Same input always yields the same output.
func (m *Matcher) Match(texts ...string) []domain.EventTag {
	blob := strings.ToLower(strings.Join(texts, " "))

	seen := make(map[string]struct{})
	var tags []domain.EventTag

	for _, r := range m.rules {
		for _, kw := range r.keywords {
			if !strings.Contains(blob, kw) {
				continue
			}
			key := r.category + "|" + r.value
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				tags = append(tags, domain.EventTag{
					Category: r.category,
					Value:    r.value,
				})
			}
			break
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Category == tags[j].Category {
			return tags[i].Value < tags[j].Value
		}
		return tags[i].Category < tags[j].Category
	})

	return tags
}
