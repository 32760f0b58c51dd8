// Package profilestore loads, parses and caches the two external factor
// table documents. The cache is the only shared mutable state in the
// engine: it is populated lazily on first use, concurrent first loads of
// the same document collapse into a single in-flight fetch, and it is
// invalidated only by an explicit Reset.
package profilestore

import (
	"context"
	"sync"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
	"golang.org/x/sync/singleflight"
)

// Store caches parsed factor profiles keyed by profile name. It is an
// injectable object rather than ambient package state, so tests never leak
// cached profiles into each other.
type Store struct {
	source contract.ProfileSource

	group singleflight.Group

	mu     sync.RWMutex
	hourly map[string]*schema.ExpansionProfile
	norm   map[string]*schema.NormalizationProfile
}

// NewStore builds a store around a profile source.
func NewStore(source contract.ProfileSource) *Store {
	return &Store{source: source}
}

// Hourly returns the named hourly expansion profile, fetching and parsing
// the hourly document on first use. Concurrent callers during the first
// load share one fetch and one eventual result.
func (s *Store) Hourly(ctx context.Context, name string) (*schema.ExpansionProfile, error) {
	s.mu.RLock()
	profile, ok := s.hourly[name]
	s.mu.RUnlock()
	if ok {
		return profile, nil
	}

	if err := s.loadDocument(ctx, schema.HourlyProfileKind); err != nil {
		return nil, err
	}

	s.mu.RLock()
	profile, ok = s.hourly[name]
	s.mu.RUnlock()
	if !ok {
		return nil, &UnknownProfileError{Kind: schema.HourlyProfileKind, Name: name}
	}
	return profile, nil
}

// Normalization returns the named daily/monthly normalization profile,
// fetching and parsing the normalization document on first use.
func (s *Store) Normalization(ctx context.Context, name string) (*schema.NormalizationProfile, error) {
	s.mu.RLock()
	profile, ok := s.norm[name]
	s.mu.RUnlock()
	if ok {
		return profile, nil
	}

	if err := s.loadDocument(ctx, schema.NormalizationProfileKind); err != nil {
		return nil, err
	}

	s.mu.RLock()
	profile, ok = s.norm[name]
	s.mu.RUnlock()
	if !ok {
		return nil, &UnknownProfileError{Kind: schema.NormalizationProfileKind, Name: name}
	}
	return profile, nil
}

// loadDocument fetches and parses one document kind exactly once per
// in-flight request. Loads of different kinds proceed concurrently; loads
// of the same kind are collapsed by the singleflight group. A timeout or
// fetch failure surfaces as a LoadError, never a silent hang.
func (s *Store) loadDocument(ctx context.Context, kind schema.ProfileKind) error {
	_, err, _ := s.group.Do(string(kind), func() (any, error) {
		// Re-check under the write path: a previous flight may have already
		// populated the cache between our read miss and this call.
		if s.documentLoaded(kind) {
			return nil, nil
		}

		data, err := s.source.Fetch(ctx, kind)
		if err != nil {
			return nil, &LoadError{Kind: kind, Err: err}
		}

		switch kind {
		case schema.HourlyProfileKind:
			profiles, err := parseHourlyDocument(data)
			if err != nil {
				return nil, &LoadError{Kind: kind, Err: err}
			}
			s.mu.Lock()
			s.hourly = profiles
			s.mu.Unlock()
		default:
			profiles, err := parseNormDocument(data)
			if err != nil {
				return nil, &LoadError{Kind: kind, Err: err}
			}
			s.mu.Lock()
			s.norm = profiles
			s.mu.Unlock()
		}
		return nil, nil
	})
	return err
}

// documentLoaded reports whether a document kind has been parsed into the
// cache already.
func (s *Store) documentLoaded(kind schema.ProfileKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kind == schema.HourlyProfileKind {
		return s.hourly != nil
	}
	return s.norm != nil
}

// Reset drops all cached profiles. The next lookup reloads from the
// source.
func (s *Store) Reset() {
	s.mu.Lock()
	s.hourly = nil
	s.norm = nil
	s.mu.Unlock()
}
