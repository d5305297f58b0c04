package vault

import (
	"context"
	"math"
)

// ContextParams holds parameters for context assembly.
type ContextParams struct {
	Query     string
	Kind      string
	Principal string
	Budget    int // max chars in output (rough token proxy: 1 token ≈ 4 chars)
}

// ContextRecord is a scored record selected for context output.
type ContextRecord struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	Excerpt bool    `json:"excerpt,omitempty"`
}

// ContextResult is the assembled context response.
type ContextResult struct {
	Budget  int             `json:"budget"`
	Used    int             `json:"used"`
	Records []ContextRecord `json:"records"`
}

// Context searches and scores records for the query, then greedily
// packs the best ones into a token budget for prompt injection.
func (v *Vault) Context(ctx context.Context, p ContextParams) (*ContextResult, error) {
	budget := p.Budget
	if budget <= 0 {
		budget = 4000
	}
	charBudget := budget * 4

	results, err := v.Search(ctx, SearchParams{
		Query:     p.Query,
		Kind:      p.Kind,
		Principal: p.Principal,
		Limit:     50,
	})
	if err != nil {
		return nil, err
	}

	out := &ContextResult{Budget: budget, Records: []ContextRecord{}}
	used := 0

	for _, r := range results {
		contentLen := len(r.Record.Content)
		if used+contentLen <= charBudget {
			out.Records = append(out.Records, ContextRecord{
				ID:      r.ID,
				Kind:    r.Record.Metadata.Kind,
				Content: r.Record.Content,
				Score:   math.Round(r.Score*100) / 100,
			})
			used += contentLen
		} else if remaining := charBudget - used; remaining >= 100 {
			// Partial fit — excerpt, then the budget is full.
			excerpt := r.Record.Content
			if len(excerpt) > remaining {
				excerpt = excerpt[:remaining] + "..."
			}
			out.Records = append(out.Records, ContextRecord{
				ID:      r.ID,
				Kind:    r.Record.Metadata.Kind,
				Content: excerpt,
				Score:   math.Round(r.Score*100) / 100,
				Excerpt: true,
			})
			used += len(excerpt)
			break
		} else {
			break
		}
	}

	out.Used = used / 4
	return out, nil
}
