package exam

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/Intergalactyc/lsat/internal/bank"
	"github.com/Intergalactyc/lsat/internal/taxonomy"
)

// Structure maps a section name to its target question count.
type Structure map[string]int

// DefaultStructure is the stock full-length practice exam.
func DefaultStructure() Structure {
	return Structure{"LR": 25, "RC": 27}
}

// Shortage reports a category that could not fill its allocation.
type Shortage struct {
	Section   string `json:"section"`
	Category  string `json:"category"`
	Needed    int    `json:"needed"`
	Available int    `json:"available"`
}

// Composer assembles randomized exams from the bank. A Composer is safe
// for concurrent use; each Compose call runs under its own lock so the
// shared random source is never torn.
type Composer struct {
	mu   sync.Mutex
	bank *bank.Bank
	tax  taxonomy.Taxonomy
	rng  *rand.Rand
	log  *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithSeed makes composition deterministic for a given bank and
// structure. Intended for tests and reproducible exports.
func WithSeed(seed uint64) Option {
	return func(c *Composer) {
		c.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// NewComposer creates a Composer over the given bank and taxonomy.
// Without options it uses a freshly seeded random source.
func NewComposer(b *bank.Bank, tax taxonomy.Taxonomy, log *slog.Logger, opts ...Option) *Composer {
	c := &Composer{
		bank: b,
		tax:  tax,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose selects questions matching the target structure and returns
// them in a fully shuffled order, plus any per-category shortages.
//
// Per section: every category gets floor(total/categories); the
// remainder slots go to categories drawn uniformly without replacement.
// A category with fewer candidates than its allocation contributes all
// it has and is reported as a shortage, never an error. The per-section
// total therefore never exceeds the target.
func (c *Composer) Compose(structure Structure) ([]bank.Question, []Shortage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var selected []bank.Question
	var shortages []Shortage

	// Walk sections in taxonomy order so a fixed seed gives a fixed exam
	// regardless of map iteration order.
	for _, sec := range c.tax {
		total := structure[sec.Name]
		if total <= 0 {
			continue
		}
		labels := sec.Labels()

		base := total / len(labels)
		rem := total % len(labels)
		counts := make([]int, len(labels))
		for i := range counts {
			counts[i] = base
		}
		for _, idx := range c.rng.Perm(len(labels))[:rem] {
			counts[idx]++
		}

		for i, label := range labels {
			cnt := counts[i]
			if cnt == 0 {
				continue
			}
			candidates := c.bank.ByType(label)
			if len(candidates) < cnt {
				c.log.Warn("not enough questions for category",
					"section", sec.Name,
					"category", label,
					"needed", cnt,
					"available", len(candidates),
				)
				shortages = append(shortages, Shortage{
					Section:   sec.Name,
					Category:  label,
					Needed:    cnt,
					Available: len(candidates),
				})
				cnt = len(candidates)
			}
			selected = append(selected, c.sample(candidates, cnt)...)
		}
	}

	c.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected, shortages
}

// sample picks n questions uniformly without replacement.
func (c *Composer) sample(candidates []bank.Question, n int) []bank.Question {
	out := make([]bank.Question, 0, n)
	for _, idx := range c.rng.Perm(len(candidates))[:n] {
		out = append(out, candidates[idx])
	}
	return out
}

// Render formats an assembled exam as plain text, one numbered block per
// question.
func Render(questions []bank.Question) string {
	blocks := make([]string, 0, len(questions))
	for i, q := range questions {
		blocks = append(blocks, fmt.Sprintf("Q%d [%s] (%s):\n%s\n", i+1, q.Type, q.Source, strings.TrimSpace(q.Text)))
	}
	return strings.Join(blocks, "\n")
}
