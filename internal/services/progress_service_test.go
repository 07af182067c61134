package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressService_EmptyForNewUser(t *testing.T) {
	svc := NewProgressService(newTestDB(t))

	p, err := svc.GetProgress(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProgressService_AppendKeepsOrder(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.AppendProgress(ctx, "u1", "Week 1", float(50)))
	require.NoError(t, svc.AppendProgress(ctx, "u1", "Week 2", float(65)))
	require.NoError(t, svc.AppendProgress(ctx, "u2", "Week 1", float(7.5)))

	p, err := svc.GetProgress(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"Week 1", "Week 2"}, p.Labels)
	assert.Equal(t, []float64{50, 65}, p.DataPoints)

	other, err := svc.GetProgress(ctx, "u2")
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, []string{"Week 1"}, other.Labels)
	assert.Equal(t, []float64{7.5}, other.DataPoints)
}

func TestProgressService_AppendZeroValue(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.AppendProgress(ctx, "u1", "Week 1", float(0)))

	p, err := svc.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, p.DataPoints)
}

func TestProgressService_AppendValidation(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	assert.ErrorIs(t, svc.AppendProgress(ctx, "u1", "", float(1)), ErrMissingField)
	assert.ErrorIs(t, svc.AppendProgress(ctx, "u1", "  ", float(1)), ErrMissingField)
	assert.ErrorIs(t, svc.AppendProgress(ctx, "u1", "Week 1", nil), ErrMissingField)

	p, err := svc.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProgressService_LabelWithJSONCharacters(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.AppendProgress(ctx, "u1", `Week "1", [draft]`, float(1)))
	require.NoError(t, svc.AppendProgress(ctx, "u1", `Week 2`, float(2)))

	p, err := svc.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{`Week "1", [draft]`, "Week 2"}, p.Labels)
}
