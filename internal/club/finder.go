package club

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Suggestion is a user that loosely matches a free-text name query.
type Suggestion struct {
	User       User
	Confidence float64
}

// minConfidence is the threshold below which a user is not suggested at all.
const minConfidence = 0.3

// FindUsers ranks users by how closely their login or display name matches query.
// At most limit suggestions are returned, best first.
func FindUsers(query string, users []User, limit int) []Suggestion {
	q := normalizeName(query)
	if q == "" {
		return nil
	}

	var suggestions []Suggestion
	for _, u := range users {
		score := max(nameSimilarity(q, normalizeName(u.DisplayName)), nameSimilarity(q, normalizeName(u.Name)))
		if score >= minConfidence {
			suggestions = append(suggestions, Suggestion{User: u, Confidence: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func nameSimilarity(query, name string) float64 {
	if name == "" {
		return 0
	}
	if query == name {
		return 1
	}
	// A prefix or contained match is nearly as good as exact for chat handles.
	if strings.Contains(name, query) {
		return 0.9
	}
	return max(stringSimilarity(query, name), tokenSimilarity(query, name))
}

// normalizeName lowercases and strips everything except letters, digits and single spaces.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stringSimilarity(s1, s2 string) float64 {
	longest := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(s1, s2))/float64(longest)
}

func tokenSimilarity(s1, s2 string) float64 {
	t1, t2 := strings.Fields(s1), strings.Fields(s2)
	if len(t1) == 0 || len(t2) == 0 {
		return 0
	}
	matched := 0
	for _, a := range t1 {
		for _, b := range t2 {
			if stringSimilarity(a, b) > 0.8 {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(max(len(t1), len(t2)))
}
