package skills

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match is a routed skill with its relevance score.
type Match struct {
	Skill Skill `json:"skill"`
	Score int   `json:"score"`
}

// Route scores every skill against the query and returns the matches with
// a positive score, best first. Equal scores keep discovery order, so an
// earlier skill dir wins ties.
//
// A trigger hit counts 3, a name hit 2, a description hit 1, summed per
// query term.
func Route(list []Skill, query string) []Match {
	terms := strings.Fields(normalizeText(query))
	if len(terms) == 0 {
		return nil
	}

	var out []Match
	for _, sk := range list {
		if score := scoreSkill(sk, terms); score > 0 {
			out = append(out, Match{Skill: sk, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func scoreSkill(sk Skill, terms []string) int {
	name := normalizeText(sk.Name)
	desc := normalizeText(sk.Description)
	triggers := make([]string, len(sk.Triggers))
	for i, tr := range sk.Triggers {
		triggers[i] = normalizeText(tr)
	}

	score := 0
	for _, term := range terms {
		for _, tr := range triggers {
			if strings.Contains(tr, term) {
				score += 3
				break
			}
		}
		if strings.Contains(name, term) {
			score += 2
		}
		if strings.Contains(desc, term) {
			score++
		}
	}
	return score
}

// stripMarks removes combining marks after NFD decomposition, so accented
// and plain spellings compare equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeText(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
