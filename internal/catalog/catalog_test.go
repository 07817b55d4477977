package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dealerdesk/internal/cache"
	"github.com/rshade/dealerdesk/internal/model"
)

type fakeSource struct {
	calls   atomic.Int32
	trimErr error
}

func (f *fakeSource) ListManufacturers(context.Context) ([]model.Manufacturer, error) {
	f.calls.Add(1)
	return []model.Manufacturer{{ID: "m1", BrandName: "Toyota"}, {ID: "m2", BrandName: "BMW"}}, nil
}

func (f *fakeSource) ListVehicleTypes(context.Context) ([]model.VehicleType, error) {
	f.calls.Add(1)
	return []model.VehicleType{
		{ID: "v1", ModelName: "Camry", Manufacturer: &model.Ref{ID: "m1"}},
		{ID: "v2", ModelName: "X5", Manufacturer: &model.Ref{ID: "m2"}},
		{ID: "v3", ModelName: "Corolla", Manufacturer: &model.Ref{ID: "m1"}},
		{ID: "v4", ModelName: "Orphan"},
	}, nil
}

func (f *fakeSource) ListTrims(context.Context) ([]model.Trim, error) {
	f.calls.Add(1)
	if f.trimErr != nil {
		return nil, f.trimErr
	}
	return []model.Trim{
		{ID: "t1", TrimName: "LE", VehicleType: &model.Ref{ID: "v1"}, Specifications: []string{"ABS"}},
		{ID: "t2", TrimName: "M Sport", VehicleType: &model.Ref{ID: "v2"}},
	}, nil
}

func TestLoad_CascadeLookups(t *testing.T) {
	l := NewLoader(&fakeSource{}, nil, "http://localhost:8000")
	c, err := l.Load(context.Background())
	require.NoError(t, err)

	vts := c.VehicleTypesFor("m1")
	require.Len(t, vts, 2)
	assert.Equal(t, "Camry", vts[0].ModelName)
	assert.Equal(t, "Corolla", vts[1].ModelName)
	assert.Empty(t, c.VehicleTypesFor("nope"))

	trims := c.TrimsFor("v1")
	require.Len(t, trims, 1)
	assert.Equal(t, []string{"ABS"}, trims[0].Specifications)

	m, ok := c.Manufacturer("m2")
	require.True(t, ok)
	assert.Equal(t, "BMW", m.BrandName)
	_, ok = c.VehicleType("v9")
	assert.False(t, ok)
	_, ok = c.Trim("t2")
	assert.True(t, ok)
}

func TestLoad_UsesCacheUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	store, err := cache.New(cache.Options{Directory: t.TempDir(), Enabled: true, TTLSeconds: 600})
	require.NoError(t, err)
	src := &fakeSource{}
	l := NewLoader(src, store, "http://localhost:8000")

	_, err = l.Load(ctx)
	require.NoError(t, err)
	_, err = l.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(3), src.calls.Load())

	require.NoError(t, l.Invalidate(ctx))
	c, err := l.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(6), src.calls.Load())
	assert.Len(t, c.Manufacturers, 2)
}

func TestLoad_Error(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoader(&fakeSource{trimErr: boom}, nil, "")

	_, err := l.Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "loading trims")
}

func TestInvalidate_NoStore(t *testing.T) {
	require.NoError(t, NewLoader(&fakeSource{}, nil, "").Invalidate(context.Background()))
}
