// Package entity implements types.EntityStore on a types.Medium and the
// typed Collection view over it.
//
// A store keeps its whole collection in memory and writes the full JSON
// array to its medium slot on every mutation; there is no incremental
// persistence. Records hold values in their JSON-decoded form, so numbers
// (including id) are float64 and timestamps are strings in
// types.TimeLayout.
package entity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/pkg/types"
)

var _ types.EntityStore = (*Store)(nil)

// Store implements types.EntityStore for one named collection.
type Store struct {
	mu       sync.RWMutex
	name     string
	key      string
	medium   types.Medium
	records  []types.Record
	now      func() time.Time
	last     time.Time
	validate func(types.Record) error
	lazy     bool
	logger   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithValidator installs a check run on every record before it is stored.
// Seeds, created records and merged updates all pass through it.
func WithValidator(fn func(types.Record) error) Option {
	return func(s *Store) { s.validate = fn }
}

// WithLazySeed keeps a missing slot absent until the first mutation writes
// it. Reads of an unknown collection then leave the medium untouched.
func WithLazySeed() Option {
	return func(s *Store) { s.lazy = true }
}

// Open loads the collection persisted under types.CollectionKey(name). When
// the medium has no such slot, seed is stamped, persisted and used instead.
// Seed records without a positive id get the next free one; seed records
// without timestamps share a single stamp.
func Open(ctx context.Context, m types.Medium, name string, seed []types.Record, opts ...Option) (*Store, error) {
	if name == "" || types.CollectionKey(name) == types.SessionKey {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidName, name)
	}

	s := &Store{
		name:   name,
		key:    types.CollectionKey(name),
		medium: m,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("collection", name))

	raw, ok, err := m.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", types.ErrStorage, name, err)
	}
	if ok {
		records, err := decodeCollection(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", types.ErrCorrupt, name, err)
		}
		s.records = records
		s.last = latestStamp(records)
		s.logger.Debug("collection loaded", zap.Int("records", len(records)))
		return s, nil
	}

	records, err := s.stampSeed(seed)
	if err != nil {
		return nil, err
	}
	if !s.lazy {
		if err := s.persist(ctx, records); err != nil {
			return nil, err
		}
	}
	s.records = records
	s.last = latestStamp(records)
	s.logger.Debug("collection seeded", zap.Int("records", len(records)))
	return s, nil
}

// Name returns the collection name.
func (s *Store) Name() string {
	return s.name
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// List returns a copy of the collection ordered and truncated by opts.
func (s *Store) List(ctx context.Context, opts types.ListOptions) ([]types.Record, error) {
	return s.Filter(ctx, nil, opts)
}

// Filter returns the records matching every key of query exactly, ordered
// and truncated by opts. Ties in the sort field keep stored order.
func (s *Store) Filter(ctx context.Context, query types.Record, opts types.ListOptions) ([]types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	s.mu.RLock()
	result := make([]types.Record, 0, len(s.records))
	for _, r := range s.records {
		if matches(r, query) {
			result = append(result, r)
		}
	}
	s.mu.RUnlock()

	sortRecords(result, opts.Sort)
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	for i, r := range result {
		result[i] = r.Clone()
	}
	return result, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id int) (types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%s %d: %w", s.name, id, types.ErrNotFound)
	}
	return s.records[idx].Clone(), nil
}

// Create assigns max(ids ∪ {0})+1, stamps created_date and updated_date,
// appends the record and persists the collection. Caller-supplied id and
// timestamps are ignored.
func (s *Store) Create(ctx context.Context, fields types.Record) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := stripManaged(fields)
	stamp := types.FormatTime(s.stamp())
	rec[types.FieldID] = s.nextID()
	rec[types.FieldCreatedDate] = stamp
	rec[types.FieldUpdatedDate] = stamp

	rec, err := normalize(rec)
	if err != nil {
		return nil, err
	}
	if err := s.check(rec); err != nil {
		return nil, err
	}

	next := append(slices.Clip(s.records), rec)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.records = next

	id, _ := rec.ID()
	s.logger.Debug("record created", zap.Int("id", id))
	return rec.Clone(), nil
}

// Update merges fields over the record with the given id (last write wins
// per field), refreshes updated_date and persists. The id and created_date
// of a record never change. Returns types.ErrNotFound when no record has
// that id; the collection is then left untouched.
func (s *Store) Update(ctx context.Context, id int, fields types.Record) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%s %d: %w", s.name, id, types.ErrNotFound)
	}

	merged := s.records[idx].Clone()
	maps.Copy(merged, stripManaged(fields))
	merged[types.FieldUpdatedDate] = types.FormatTime(s.stamp())

	merged, err := normalize(merged)
	if err != nil {
		return nil, err
	}
	if err := s.check(merged); err != nil {
		return nil, err
	}

	next := slices.Clone(s.records)
	next[idx] = merged
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.records = next

	s.logger.Debug("record updated", zap.Int("id", id), zap.Int("fields", len(fields)))
	return merged.Clone(), nil
}

// Delete removes the record with the given id and persists. An absent id
// is a no-op and performs no write.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return ctx.Err()
	}
	next := slices.DeleteFunc(slices.Clone(s.records), func(r types.Record) bool {
		rid, ok := r.ID()
		return ok && rid == id
	})
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.records = next

	s.logger.Debug("record deleted", zap.Int("id", id))
	return nil
}

// persist writes records to the medium as one JSON array.
func (s *Store) persist(ctx context.Context, records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %w", types.ErrStorage, s.name, err)
	}
	if err := s.medium.Set(ctx, s.key, data); err != nil {
		s.logger.Error("persist failed", zap.Error(err))
		return fmt.Errorf("%w: writing %s: %w", types.ErrStorage, s.name, err)
	}
	return nil
}

func (s *Store) check(r types.Record) error {
	if s.validate == nil {
		return nil
	}
	return s.validate(r)
}

// stampSeed copies seed, filling missing ids and timestamps.
func (s *Store) stampSeed(seed []types.Record) ([]types.Record, error) {
	records := make([]types.Record, 0, len(seed))
	maxID := 0
	for _, r := range seed {
		if id, ok := r.ID(); ok && id > maxID {
			maxID = id
		}
	}

	// One stamp is shared by every seed record missing a timestamp. It is
	// taken only when needed so an empty seed leaves the clock untouched.
	var stamp string
	for _, r := range seed {
		rec := r.Clone()
		if rec == nil {
			rec = types.Record{}
		}
		if id, ok := rec.ID(); !ok || id <= 0 {
			maxID++
			rec[types.FieldID] = maxID
		}
		if rec.String(types.FieldCreatedDate) == "" {
			if stamp == "" {
				stamp = types.FormatTime(s.stamp())
			}
			rec[types.FieldCreatedDate] = stamp
		}
		if rec.String(types.FieldUpdatedDate) == "" {
			rec[types.FieldUpdatedDate] = rec[types.FieldCreatedDate]
		}
		rec, err := normalize(rec)
		if err != nil {
			return nil, err
		}
		if err := s.check(rec); err != nil {
			return nil, fmt.Errorf("seed record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// stamp returns the current time at millisecond precision, advanced past
// every stamp this store has issued or loaded so successive mutations get
// strictly increasing timestamps.
func (s *Store) stamp() time.Time {
	t := s.now().UTC().Truncate(time.Millisecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Millisecond)
	}
	s.last = t
	return t
}

func (s *Store) nextID() int {
	maxID := 0
	for _, r := range s.records {
		if id, ok := r.ID(); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.records, func(r types.Record) bool {
		rid, ok := r.ID()
		return ok && rid == id
	})
}

// stripManaged copies fields without the store-managed keys.
func stripManaged(fields types.Record) types.Record {
	rec := make(types.Record, len(fields)+3)
	for k, v := range fields {
		switch k {
		case types.FieldID, types.FieldCreatedDate, types.FieldUpdatedDate:
			continue
		}
		rec[k] = v
	}
	return rec
}

// normalize round-trips r through JSON so in-memory records match what a
// reload from the medium would produce.
func normalize(r types.Record) (types.Record, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding record: %w", types.ErrStorage, err)
	}
	var out types.Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding record: %w", types.ErrStorage, err)
	}
	return out, nil
}

// decodeCollection parses a persisted slot. The slot must be a JSON array
// of objects.
func decodeCollection(raw []byte) ([]types.Record, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errors.New("slot holds null")
	}
	var records []types.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
	}
	return records, nil
}

// latestStamp returns the newest timestamp found in records.
func latestStamp(records []types.Record) time.Time {
	var last time.Time
	for _, r := range records {
		for _, field := range []string{types.FieldCreatedDate, types.FieldUpdatedDate} {
			t, err := types.ParseTime(r.String(field))
			if err == nil && t.After(last) {
				last = t
			}
		}
	}
	return last
}
