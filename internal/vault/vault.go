// Package vault composes the compression codec, security gate, file
// storage, and organization index behind the single contract callers
// use. Callers instantiate one Vault per logical store (for example a
// memories store and a prompts store over separate root directories).
package vault

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kmccarty/recordvault/internal/compress"
	"github.com/kmccarty/recordvault/internal/index"
	"github.com/kmccarty/recordvault/internal/model"
	"github.com/kmccarty/recordvault/internal/security"
	"github.com/kmccarty/recordvault/internal/storage"
)

// DefaultPrincipal is assumed when a caller supplies no principal.
const DefaultPrincipal = "system"

// Config configures a Vault. The seal key is an explicit value, never
// derived at startup; leaving it empty disables sealing.
type Config struct {
	Root        string
	Profile     model.Profile
	SealKey     string
	DefaultDeny bool
	Threshold   int // compression threshold in bytes, 0 = default
	Logger      *slog.Logger
}

// Vault is the facade over one logical record store.
type Vault struct {
	cfg    Config
	log    *slog.Logger
	codec  *compress.Codec
	gate   *security.Gate
	sealer *security.Sealer
	files  *storage.Manager
	org    *index.Org

	entropyMu sync.Mutex
	entropy   *rand.Rand
}

// New opens a vault over cfg.Root, rebuilding the id and category
// indexes from the record files found there.
func New(cfg Config) (*Vault, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Profile == "" {
		cfg.Profile = model.ProfileMemory
	}

	var sealer *security.Sealer
	if cfg.SealKey != "" {
		var err error
		sealer, err = security.NewSealer(cfg.SealKey)
		if err != nil {
			return nil, err
		}
	}

	files, err := storage.NewManager(cfg.Root, log)
	if err != nil {
		return nil, err
	}

	v := &Vault{
		cfg:     cfg,
		log:     log,
		codec:   compress.NewCodec(cfg.Threshold, log),
		gate:    security.NewGate(cfg.DefaultDeny),
		sealer:  sealer,
		files:   files,
		org:     index.NewOrg(),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	v.rebuildIndex()
	return v, nil
}

// rebuildIndex restores category buckets from persisted record
// metadata so a partial failure before shutdown self-heals on load.
func (v *Vault) rebuildIndex() {
	for _, id := range v.files.IDs() {
		rec, err := v.files.Get(id)
		if err != nil {
			continue
		}
		if rec.Metadata.Category != "" {
			v.org.Add(id, []string{rec.Metadata.Category}, "")
		}
	}
}

func (v *Vault) newID() string {
	v.entropyMu.Lock()
	defer v.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), v.entropy).String()
}

// StoreParams holds parameters for storing a record.
type StoreParams struct {
	ID       string // generated when empty
	Content  string
	Metadata model.Metadata
}

// Store persists a record. The pipeline is gate check, metadata
// validation, compression, sealing for critical priority, file write,
// then index update — the index mutates only after the write succeeds,
// so a persistence failure leaves no partial index entry behind.
// Storing an existing id overwrites it and increments its version.
func (v *Vault) Store(ctx context.Context, p StoreParams) (*model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := p.ID
	if id == "" {
		id = v.newID()
	}

	meta := p.Metadata
	principal := meta.Source
	if principal == "" {
		principal = DefaultPrincipal
	}
	if d := v.gate.Check(id, principal); !d.Granted() {
		return nil, fmt.Errorf("store %s as %q: %w", id, principal, ErrAccessDenied)
	}
	if err := meta.Validate(v.cfg.Profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	now := time.Now().UTC()
	version := 1
	if prev, err := v.files.Get(id); err == nil {
		version = prev.Version + 1
		if meta.CreatedAt.IsZero() {
			meta.CreatedAt = prev.Metadata.CreatedAt
		}
		meta.AccessCount = prev.Metadata.AccessCount
		meta.LastAccessed = prev.Metadata.LastAccessed
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}
	meta.UpdatedAt = now

	payload, compressed := v.codec.Compress(p.Content)
	sealed := false
	if meta.Priority == model.PriorityCritical && v.sealer != nil {
		token, err := v.sealer.Seal(payload)
		if err != nil {
			return nil, fmt.Errorf("seal %s: %w", id, err)
		}
		payload = token
		sealed = true
	}

	rec := &model.Record{
		ID:         id,
		Content:    payload,
		Version:    version,
		Compressed: compressed,
		Sealed:     sealed,
		Metadata:   meta,
	}
	if err := v.files.Store(rec); err != nil {
		return nil, fmt.Errorf("persist %s: %w", id, err)
	}
	if meta.Category != "" {
		v.org.Add(id, []string{meta.Category}, "")
	}

	out := *rec
	out.Content = p.Content
	out.Compressed = false
	out.Sealed = false
	return &out, nil
}

// Retrieve returns the record for id after an access check, with its
// content decoded, and bumps its access tracking. A missing record and
// a denied principal are distinct errors.
func (v *Vault) Retrieve(ctx context.Context, id, principal string) (*model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if principal == "" {
		principal = DefaultPrincipal
	}
	if d := v.gate.Check(id, principal); !d.Granted() {
		return nil, fmt.Errorf("retrieve %s as %q: %w", id, principal, ErrAccessDenied)
	}

	rec, err := v.files.Get(id)
	if err != nil {
		return nil, err
	}
	content, err := v.open(rec)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec.Metadata.AccessCount++
	rec.Metadata.LastAccessed = &now
	// Access bookkeeping is best effort; a failed write must not block
	// the read that already succeeded.
	if err := v.files.Store(rec); err != nil {
		v.log.Warn("persist access tracking", "id", id, "error", err)
	}

	out := *rec
	out.Content = content
	out.Compressed = false
	out.Sealed = false
	return &out, nil
}

// open decodes a persisted payload: unseal first, then decompress.
func (v *Vault) open(rec *model.Record) (string, error) {
	payload := rec.Content
	if rec.Sealed {
		if v.sealer == nil {
			return "", fmt.Errorf("open %s: %w", rec.ID, ErrNoSealKey)
		}
		plain, err := v.sealer.Open(payload)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", rec.ID, err)
		}
		payload = plain
	}
	content, err := v.codec.Decompress(payload, rec.Compressed)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", rec.ID, err)
	}
	return content, nil
}

// ListParams holds parameters for listing records.
type ListParams struct {
	Category  string
	Kind      string
	Principal string
	Limit     int // 0 = unlimited
}

// List returns records matching the filters (exact-match, AND
// semantics) that the principal may access. Content is decoded; access
// counts are not bumped.
func (v *Vault) List(ctx context.Context, p ListParams) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	principal := p.Principal
	if principal == "" {
		principal = DefaultPrincipal
	}

	recs, err := v.files.List(p.Category, p.Kind)
	if err != nil {
		return nil, err
	}

	var out []model.Record
	for i := range recs {
		rec := &recs[i]
		if !v.gate.Check(rec.ID, principal).Granted() {
			continue
		}
		content, err := v.open(rec)
		if err != nil {
			v.log.Warn("skipping undecodable record", "id", rec.ID, "error", err)
			continue
		}
		rec.Content = content
		rec.Compressed = false
		rec.Sealed = false
		out = append(out, *rec)
		if p.Limit > 0 && len(out) >= p.Limit {
			break
		}
	}
	return out, nil
}

// OrganizeParams holds parameters for indexing a record.
type OrganizeParams struct {
	ID         string
	Categories []string
	Hierarchy  string
}

// Organize adds the id to each named category bucket and optionally
// appends it to a hierarchy. Repeat calls are idempotent. Ids missing
// from storage are still indexed; lookups filter dangling entries.
func (v *Vault) Organize(ctx context.Context, p OrganizeParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ID == "" {
		return fmt.Errorf("%w: organize needs an id", ErrInvalidMetadata)
	}
	if !v.files.Has(p.ID) {
		v.log.Debug("organizing id not present in storage", "id", p.ID)
	}
	v.org.Add(p.ID, p.Categories, p.Hierarchy)
	return nil
}

// GetByCategory returns the ids filed under a category, with ids no
// longer present in storage silently dropped. Unknown names return an
// empty slice.
func (v *Vault) GetByCategory(name string) []string {
	return v.filterDangling(v.org.ByCategory(name))
}

// GetByHierarchy returns the ids of a hierarchy in insertion order,
// with dangling ids silently dropped.
func (v *Vault) GetByHierarchy(name string) []string {
	return v.filterDangling(v.org.ByHierarchy(name))
}

func (v *Vault) filterDangling(ids []string) []string {
	out := ids[:0]
	for _, id := range ids {
		if v.files.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// SetAccess replaces the full permitted-principal set for an id. The
// rule lives for the life of the process.
func (v *Vault) SetAccess(id string, principals []string) error {
	if id == "" {
		return fmt.Errorf("%w: set access needs an id", ErrInvalidMetadata)
	}
	v.gate.SetAccess(id, principals)
	return nil
}

// CheckAccess reports the gate's decision for an id and principal.
func (v *Vault) CheckAccess(id, principal string) security.Decision {
	if principal == "" {
		principal = DefaultPrincipal
	}
	return v.gate.Check(id, principal)
}
