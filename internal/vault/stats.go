package vault

import "context"

// Stats holds store statistics.
type Stats struct {
	Root        string         `json:"root"`
	Records     int            `json:"records"`
	Compressed  int            `json:"compressed"`
	Sealed      int            `json:"sealed"`
	ByKind      map[string]int `json:"by_kind"`
	ByCategory  map[string]int `json:"by_category"`
	Hierarchies []string       `json:"hierarchies,omitempty"`
	DiskBytes   int64          `json:"disk_bytes"`
}

// Stats summarizes the store contents and disk footprint.
func (v *Vault) Stats(ctx context.Context) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs, err := v.files.List("", "")
	if err != nil {
		return nil, err
	}

	st := &Stats{
		Root:        v.files.Root(),
		Records:     len(recs),
		ByKind:      make(map[string]int),
		ByCategory:  make(map[string]int),
		Hierarchies: v.org.Hierarchies(),
	}
	for i := range recs {
		rec := &recs[i]
		st.ByKind[rec.Metadata.Kind]++
		if rec.Metadata.Category != "" {
			st.ByCategory[rec.Metadata.Category]++
		}
		if rec.Compressed {
			st.Compressed++
		}
		if rec.Sealed {
			st.Sealed++
		}
	}

	size, err := v.files.DiskUsage()
	if err != nil {
		v.log.Warn("disk usage unavailable", "error", err)
	}
	st.DiskBytes = size
	return st, nil
}
