package taxonomy

import "strings"

// Unknown is the sentinel label for text that matches no category.
const Unknown = "Unknown"

// Category is a single question type with its trigger keywords.
type Category struct {
	Label    string
	Keywords []string
}

// Section is a top-level exam division with an ordered category list.
// Category order matters: the first category whose keyword matches wins.
type Section struct {
	Name       string
	Categories []Category
}

// Taxonomy is an ordered list of sections. Section order matters too:
// a question matching keywords in two sections is classified into the
// earlier one.
type Taxonomy []Section

// Default returns the built-in LSAT taxonomy. LR is checked before RC,
// so "Inference" collisions between the two resolve to LR.
func Default() Taxonomy {
	return Taxonomy{
		{
			Name: "LR",
			Categories: []Category{
				{Label: "Strengthen", Keywords: []string{"strengthen", "support"}},
				{Label: "Weaken", Keywords: []string{"weaken", "undermine"}},
				{Label: "Assumption", Keywords: []string{"assume", "assumption"}},
				{Label: "Flaw", Keywords: []string{"flaw", "error", "mistake"}},
				{Label: "Inference", Keywords: []string{"infer", "inference", "follows"}},
				{Label: "Principle", Keywords: []string{"principle"}},
				{Label: "Parallel Reasoning", Keywords: []string{"parallel"}},
				{Label: "Paradox", Keywords: []string{"paradox"}},
				{Label: "Method of Reasoning", Keywords: []string{"method of reasoning", "method"}},
			},
		},
		{
			Name: "RC",
			Categories: []Category{
				{Label: "Main Point", Keywords: []string{"main point", "primary purpose"}},
				{Label: "Author's Attitude", Keywords: []string{"author's attitude", "tone"}},
				{Label: "Inference", Keywords: []string{"infer", "inference"}},
				{Label: "Function", Keywords: []string{"function of"}},
				{Label: "Detail", Keywords: []string{"detail", "mention"}},
				{Label: "Analogy", Keywords: []string{"analogy"}},
				{Label: "Structure", Keywords: []string{"structure", "organized"}},
			},
		},
	}
}

// Classify maps question text to a category label. Matching is a plain
// substring scan over the lower-cased text, first match wins across the
// whole ordered taxonomy. Returns Unknown when nothing matches.
//
// Substring matching false-positives on word fragments ("infer" matches
// "inferior"); that is the intended heuristic, not a bug.
func (t Taxonomy) Classify(text string) string {
	lc := strings.ToLower(text)
	for _, sec := range t {
		for _, cat := range sec.Categories {
			for _, kw := range cat.Keywords {
				if strings.Contains(lc, kw) {
					return cat.Label
				}
			}
		}
	}
	return Unknown
}

// Section returns the section with the given name.
func (t Taxonomy) Section(name string) (Section, bool) {
	for _, sec := range t {
		if sec.Name == name {
			return sec, true
		}
	}
	return Section{}, false
}

// Labels returns the section's category labels in declared order.
func (s Section) Labels() []string {
	labels := make([]string, len(s.Categories))
	for i, cat := range s.Categories {
		labels[i] = cat.Label
	}
	return labels
}
