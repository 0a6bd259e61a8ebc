package metadata

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// WeightedTerm is a keyword counted towards one difficulty tier.
type WeightedTerm struct {
	Term   string
	Weight int
}

// Thresholds is the decision table applied to the keyword and symbol counts.
type Thresholds struct {
	// SymbolBoost and EquationBoost trigger adding Symbols/BoostDivisor to the advanced tally.
	SymbolBoost   int
	EquationBoost int
	BoostDivisor  int
	// HardSymbols and HardEquations force Hard outright.
	HardSymbols   int
	HardEquations int
	// AdvancedShare forces Hard; AdvancedShareWithSymbols does so when
	// more than SymbolsForAdvanced symbols are present.
	AdvancedShare            float64
	AdvancedShareWithSymbols float64
	SymbolsForAdvanced       int
	// BasicShare yields Easy when fewer than EasyMaxSymbols symbols are present.
	BasicShare     float64
	EasyMaxSymbols int
}

// DifficultyRules holds the keyword tiers and thresholds.
type DifficultyRules struct {
	Advanced     []WeightedTerm
	Intermediate []WeightedTerm
	Basic        []WeightedTerm
	Symbols      string
	Thresholds   Thresholds
}

func terms(weight int, words ...string) []WeightedTerm {
	out := make([]WeightedTerm, len(words))
	for i, w := range words {
		out[i] = WeightedTerm{Term: w, Weight: weight}
	}
	return out
}

// DefaultDifficultyRules returns the stock keyword lists and thresholds.
func DefaultDifficultyRules() DifficultyRules {
	return DifficultyRules{
		Advanced: terms(1,
			"theorem", "proof", "lemma", "corollary", "derivation", "eigenvalue",
			"eigenvector", "differential", "integral", "stochastic", "asymptotic",
			"complexity", "optimization", "convergence", "manifold", "topology",
			"hypothesis", "quantum", "tensor", "gradient", "regression", "bayesian",
			"polynomial", "recursion", "isomorphism", "heuristic",
		),
		Intermediate: terms(1,
			"analysis", "method", "model", "function", "algorithm", "framework",
			"structure", "process", "system", "application", "implementation",
			"variable", "equation", "distribution", "probability", "matrix",
			"vector", "statistics", "design", "evaluate",
		),
		Basic: terms(1,
			"introduction", "overview", "basic", "basics", "simple", "example",
			"definition", "fundamental", "fundamentals", "beginner", "concept",
			"summary", "review", "outline", "what", "getting started",
		),
		Symbols: "∑∫∂√∞≈≠≤≥±×÷∈∉⊂⊆∪∩∀∃∇∆πθλμσαβγδε^",
		Thresholds: Thresholds{
			SymbolBoost:              30,
			EquationBoost:            3,
			BoostDivisor:             10,
			HardSymbols:              50,
			HardEquations:            5,
			AdvancedShare:            0.4,
			AdvancedShareWithSymbols: 0.3,
			SymbolsForAdvanced:       20,
			BasicShare:               0.6,
			EasyMaxSymbols:           10,
		},
	}
}

var reEquationNumber = regexp.MustCompile(`\(\d{1,3}\)`)

// Scores are the raw counts behind a difficulty decision.
type Scores struct {
	Advanced     int
	Intermediate int
	Basic        int
	Symbols      int
	Equations    int
}

// Classifier scores text against a DifficultyRules table.
type Classifier struct {
	rules    DifficultyRules
	advanced []weightedPattern
	inter    []weightedPattern
	basic    []weightedPattern
}

type weightedPattern struct {
	re     *regexp.Regexp
	weight int
}

func compileTerms(list []WeightedTerm) []weightedPattern {
	out := make([]weightedPattern, 0, len(list))
	for _, t := range list {
		w := t.Weight
		if w <= 0 {
			w = 1
		}
		out = append(out, weightedPattern{
			re:     regexp.MustCompile(`(?i)\b` + textutil.EscapeRegex(t.Term) + `\b`),
			weight: w,
		})
	}
	return out
}

// NewClassifier compiles rules into a reusable classifier.
func NewClassifier(rules DifficultyRules) *Classifier {
	if rules.Thresholds.BoostDivisor <= 0 {
		rules.Thresholds.BoostDivisor = 10
	}
	return &Classifier{
		rules:    rules,
		advanced: compileTerms(rules.Advanced),
		inter:    compileTerms(rules.Intermediate),
		basic:    compileTerms(rules.Basic),
	}
}

var defaultClassifier = NewClassifier(DefaultDifficultyRules())

func count(patterns []weightedPattern, text string) int {
	total := 0
	for _, p := range patterns {
		total += len(p.re.FindAllStringIndex(text, -1)) * p.weight
	}
	return total
}

// Score counts keyword, symbol and equation-number occurrences.
func (c *Classifier) Score(text string) Scores {
	s := Scores{
		Advanced:     count(c.advanced, text),
		Intermediate: count(c.inter, text),
		Basic:        count(c.basic, text),
		Equations:    len(reEquationNumber.FindAllStringIndex(text, -1)),
	}
	for _, r := range text {
		if strings.ContainsRune(c.rules.Symbols, r) {
			s.Symbols++
		}
	}
	th := c.rules.Thresholds
	if s.Symbols > th.SymbolBoost || s.Equations > th.EquationBoost {
		s.Advanced += s.Symbols / th.BoostDivisor
	}
	return s
}

// Decide applies the threshold table to precomputed scores.
func (c *Classifier) Decide(s Scores) constants.Difficulty {
	th := c.rules.Thresholds
	if s.Symbols > th.HardSymbols || s.Equations > th.HardEquations {
		return constants.Hard
	}
	total := s.Advanced + s.Intermediate + s.Basic
	if total == 0 {
		return constants.Medium
	}
	advShare := float64(s.Advanced) / float64(total)
	basicShare := float64(s.Basic) / float64(total)
	switch {
	case advShare > th.AdvancedShare,
		advShare > th.AdvancedShareWithSymbols && s.Symbols > th.SymbolsForAdvanced:
		return constants.Hard
	case basicShare > th.BasicShare && s.Symbols < th.EasyMaxSymbols:
		return constants.Easy
	default:
		return constants.Medium
	}
}

// Classify scores and decides in one step.
func (c *Classifier) Classify(text string) constants.Difficulty {
	return c.Decide(c.Score(text))
}

// ClassifyDifficulty classifies text with the default rules.
func ClassifyDifficulty(text string) constants.Difficulty {
	return defaultClassifier.Classify(text)
}
