// Package match reconciles free-text spreadsheet values against the
// controlled reference dictionaries. The matching heuristics are an explicit
// ranked strategy list evaluated in order, first hit wins, so the tie-break
// policy stays testable and swappable.
package match

import (
	"strings"

	"github.com/google/uuid"
)

// Candidate is one dictionary row as seen by the resolver.
type Candidate struct {
	ID     uuid.UUID
	Code   string
	NameEN string
	NameAR string
}

// Strategy tries to pick one candidate for the term, nil when none applies.
type Strategy func(term string, candidates []Candidate) *Candidate

// Resolver evaluates its strategies in order.
type Resolver struct {
	strategies []Strategy
}

func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve returns the first candidate any strategy picks. A blank term never
// resolves.
func (r *Resolver) Resolve(term string, candidates []Candidate) *Candidate {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	for _, s := range r.strategies {
		if c := s(term, candidates); c != nil {
			return c
		}
	}
	return nil
}

// Exact matches the English name case-insensitively or the Arabic name
// verbatim (Arabic has no case to fold).
func Exact(term string, candidates []Candidate) *Candidate {
	t := strings.TrimSpace(term)
	for i := range candidates {
		if strings.EqualFold(candidates[i].NameEN, t) || candidates[i].NameAR == t {
			return &candidates[i]
		}
	}
	return nil
}

// Substring matches bidirectionally (reference name contains the term, or the
// term contains the reference name) and also against the dictionary code.
func Substring(term string, candidates []Candidate) *Candidate {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return nil
	}
	for i := range candidates {
		name := strings.ToLower(candidates[i].NameEN)
		code := strings.ToLower(candidates[i].Code)
		if name != "" && (strings.Contains(name, t) || strings.Contains(t, name)) {
			return &candidates[i]
		}
		if code != "" && strings.Contains(code, t) {
			return &candidates[i]
		}
	}
	return nil
}

// LastToken matches the final whitespace-delimited token of the term against
// a candidate's last token or suffix, e.g. "Senior Specialist" finds
// "Specialist". Tokens of three runes or fewer are too ambiguous to use.
func LastToken(term string, candidates []Candidate) *Candidate {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(term)))
	if len(fields) == 0 {
		return nil
	}
	last := fields[len(fields)-1]
	if len([]rune(last)) <= 3 {
		return nil
	}
	for i := range candidates {
		name := strings.ToLower(candidates[i].NameEN)
		if name == "" {
			continue
		}
		nameFields := strings.Fields(name)
		if strings.HasSuffix(name, last) || nameFields[len(nameFields)-1] == last {
			return &candidates[i]
		}
	}
	return nil
}

// Company, department and nationality resolvers.

// NewNameResolver is the company/department chain: exact then substring.
func NewNameResolver() *Resolver {
	return NewResolver(Exact, Substring)
}

// NewJobResolver adds the last-token fallback for job titles.
func NewJobResolver() *Resolver {
	return NewResolver(Exact, Substring, LastToken)
}

// NewNationalityResolver matches exactly only; a misspelled nationality is an
// error for the operator to fix, never a guess.
func NewNationalityResolver() *Resolver {
	return NewResolver(Exact)
}

// Suggest returns up to limit candidate names sharing a token with the term,
// for "did you mean" error messages.
func Suggest(term string, candidates []Candidate, limit int) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(term)))
	if len(fields) == 0 {
		return nil
	}
	last := fields[len(fields)-1]

	var out []string
	for i := range candidates {
		name := strings.ToLower(candidates[i].NameEN)
		if name == "" {
			continue
		}
		if strings.Contains(name, last) || strings.Contains(last, name) || containsToken(name, last) {
			out = append(out, candidates[i].NameEN)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Names lists every candidate's English name, for "available values" errors.
func Names(candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for i := range candidates {
		out = append(out, candidates[i].NameEN)
	}
	return out
}

func containsToken(name, token string) bool {
	for _, w := range strings.Fields(name) {
		if w == token {
			return true
		}
	}
	return false
}
