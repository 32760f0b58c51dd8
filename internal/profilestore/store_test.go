package profilestore

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sbcounts/aadv/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hourlyDoc = `{
	"nbpd": {
		"hours": {
			"8": {
				"saturday": {"6": 105.0, "12": 10.5},
				"weekday": {"8": 20.0}
			},
			"13": {"saturday": {"6": 1.0}},
			"junk": {"saturday": {"6": 1.0}}
		}
	}
}`

const normDoc = `{
	"nbpd": {
		"days": {"8": {"saturday": 1.1, "monday": 0.9}},
		"months": {"8": 0.75, "0": 9.9}
	}
}`

// fakeSource serves canned documents and counts fetches per kind.
type fakeSource struct {
	hourly  string
	norm    string
	err     error
	fetches int64
}

func (f *fakeSource) Fetch(_ context.Context, kind schema.ProfileKind) ([]byte, error) {
	atomic.AddInt64(&f.fetches, 1)
	if f.err != nil {
		return nil, f.err
	}
	if kind == schema.HourlyProfileKind {
		return []byte(f.hourly), nil
	}
	return []byte(f.norm), nil
}

func TestStoreHourly(t *testing.T) {
	ctx := context.Background()

	t.Run("loads and parses the hourly document", func(t *testing.T) {
		source := &fakeSource{hourly: hourlyDoc, norm: normDoc}
		store := NewStore(source)

		profile, err := store.Hourly(ctx, "nbpd")
		require.NoError(t, err)
		assert.Equal(t, "nbpd", profile.Name)

		factor, ok := profile.HourFactor(8, schema.SaturdayType, 6)
		require.True(t, ok)
		assert.Equal(t, 105.0, factor)

		factor, ok = profile.HourFactor(8, schema.WeekdayType, 8)
		require.True(t, ok)
		assert.Equal(t, 20.0, factor)
	})

	t.Run("repeated lookups hit the cache", func(t *testing.T) {
		source := &fakeSource{hourly: hourlyDoc, norm: normDoc}
		store := NewStore(source)

		for i := 0; i < 3; i++ {
			_, err := store.Hourly(ctx, "nbpd")
			require.NoError(t, err)
		}
		assert.Equal(t, int64(1), atomic.LoadInt64(&source.fetches))
	})

	t.Run("unknown profile name", func(t *testing.T) {
		store := NewStore(&fakeSource{hourly: hourlyDoc, norm: normDoc})

		_, err := store.Hourly(ctx, "coastal")
		var unknown *UnknownProfileError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, schema.HourlyProfileKind, unknown.Kind)
		assert.Equal(t, "coastal", unknown.Name)
		assert.True(t, IsProfileError(err))
	})

	t.Run("malformed document", func(t *testing.T) {
		store := NewStore(&fakeSource{hourly: `{"nbpd": [1, 2]}`, norm: normDoc})

		_, err := store.Hourly(ctx, "nbpd")
		var load *LoadError
		require.ErrorAs(t, err, &load)
		assert.Equal(t, schema.HourlyProfileKind, load.Kind)
		assert.True(t, IsProfileError(err))
	})

	t.Run("fetch failure", func(t *testing.T) {
		fetchErr := errors.New("connection refused")
		store := NewStore(&fakeSource{err: fetchErr})

		_, err := store.Hourly(ctx, "nbpd")
		var load *LoadError
		require.ErrorAs(t, err, &load)
		assert.ErrorIs(t, err, fetchErr)
	})

	t.Run("stray month keys are skipped", func(t *testing.T) {
		store := NewStore(&fakeSource{hourly: hourlyDoc, norm: normDoc})

		profile, err := store.Hourly(ctx, "nbpd")
		require.NoError(t, err)
		assert.NotContains(t, profile.Hours, 13)
	})
}

func TestStoreNormalization(t *testing.T) {
	ctx := context.Background()

	t.Run("loads day and month factors", func(t *testing.T) {
		store := NewStore(&fakeSource{hourly: hourlyDoc, norm: normDoc})

		profile, err := store.Normalization(ctx, "nbpd")
		require.NoError(t, err)

		factor, ok := profile.DayFactor(8, "saturday")
		require.True(t, ok)
		assert.Equal(t, 1.1, factor)

		factor, ok = profile.MonthFactor(8)
		require.True(t, ok)
		assert.Equal(t, 0.75, factor)

		// Month 0 is out of range and dropped at parse time.
		_, ok = profile.MonthFactor(0)
		assert.False(t, ok)
	})

	t.Run("unknown profile name", func(t *testing.T) {
		store := NewStore(&fakeSource{hourly: hourlyDoc, norm: normDoc})

		_, err := store.Normalization(ctx, "coastal")
		var unknown *UnknownProfileError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, schema.NormalizationProfileKind, unknown.Kind)
	})
}

func TestStoreReset(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{hourly: hourlyDoc, norm: normDoc}
	store := NewStore(source)

	_, err := store.Hourly(ctx, "nbpd")
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&source.fetches))

	store.Reset()

	_, err = store.Hourly(ctx, "nbpd")
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&source.fetches))
}

func TestStoreConcurrentFirstLoad(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{hourly: hourlyDoc, norm: normDoc}
	store := NewStore(source)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := store.Hourly(ctx, "nbpd")
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}

	// The singleflight group may admit a second fetch at the margin, but
	// eight concurrent callers must not produce eight.
	assert.LessOrEqual(t, atomic.LoadInt64(&source.fetches), int64(2))
}
