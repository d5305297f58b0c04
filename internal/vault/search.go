package vault

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kmccarty/recordvault/internal/model"
)

// SearchParams holds parameters for searching records.
type SearchParams struct {
	Query     string
	Principal string
	Kind      string
	Limit     int
}

// SearchResult pairs a matched record with its relevance score.
type SearchResult struct {
	ID     string       `json:"id"`
	Record model.Record `json:"record"`
	Score  float64      `json:"score"`
}

// Search returns records whose decoded content or tags contain the
// query (case-insensitive), ranked by a heuristic relevance score:
//
//	score = term hits in content
//	      + priority weight (critical=3, high=2, normal=1, low=0)
//	      + confidence (0..1)
//	      + recency boost (1 at creation, fading to 0 over a year)
//
// Ordering is descending by score with a stable tie-break on sorted id
// order. The weights are tuning parameters, not derived constants.
func (v *Vault) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	if strings.TrimSpace(p.Query) == "" {
		return nil, ErrEmptyQuery
	}
	principal := p.Principal
	if principal == "" {
		principal = DefaultPrincipal
	}
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := strings.ToLower(p.Query)
	now := time.Now().UTC()

	var results []SearchResult
	for _, id := range v.files.IDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !v.gate.Check(id, principal).Granted() {
			continue
		}
		rec, err := v.files.Get(id)
		if err != nil {
			continue
		}
		if p.Kind != "" && rec.Metadata.Kind != p.Kind {
			continue
		}
		content, err := v.open(rec)
		if err != nil {
			v.log.Warn("skipping undecodable record in search", "id", id, "error", err)
			continue
		}

		hits := strings.Count(strings.ToLower(content), query)
		if hits == 0 && !tagMatch(rec.Metadata.Tags, query) {
			continue
		}

		score := float64(hits) +
			model.PriorityWeight(rec.Metadata.Priority) +
			rec.Metadata.Confidence +
			recencyBoost(rec.Metadata.CreatedAt, now)

		out := *rec
		out.Content = content
		out.Compressed = false
		out.Sealed = false
		results = append(results, SearchResult{
			ID:     id,
			Record: out,
			Score:  math.Round(score*1000) / 1000,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func tagMatch(tags []string, query string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// recencyBoost decays linearly from 1 to 0 over a year. Records with
// no creation date get no boost.
func recencyBoost(created, now time.Time) float64 {
	if created.IsZero() {
		return 0
	}
	ageDays := now.Sub(created).Hours() / 24
	boost := 1 - ageDays/365
	if boost < 0 {
		return 0
	}
	return boost
}
