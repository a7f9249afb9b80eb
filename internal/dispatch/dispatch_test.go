package dispatch

import (
	"context"
	"testing"

	"github.com/gapaero/loadsheet/internal/balance"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func collect(ch chan Outcome) []Outcome {
	close(ch)
	var got []Outcome
	for o := range ch {
		got = append(got, o)
	}
	return got
}

func TestDispatcherDeliversResult(t *testing.T) {
	outcomes := make(chan Outcome, 1)
	d := New(zap.NewNop(), balance.NewCalculator(zap.NewNop()), func(o Outcome) { outcomes <- o })

	ticket, err := d.Submit(balance.Input{FuelKg: 3000, TripFuelKg: 1500, TotalPax: 26, TotalFreightKg: 1200})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, ticket)
	assert.Equal(t, ticket, d.Latest())

	d.Close()
	got := collect(outcomes)
	require.Len(t, got, 1)
	assert.Equal(t, ticket, got[0].Ticket)
	require.NoError(t, got[0].Err)
	assert.Equal(t, 26, got[0].Result.Distribution.TotalPax())
}

func TestDispatcherLatestWins(t *testing.T) {
	started := make(chan struct{})
	engine := EngineFunc(func(ctx context.Context, in balance.Input) (*balance.Result, error) {
		if in.TotalPax == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return &balance.Result{Trim: float64(in.TotalPax)}, nil
	})

	outcomes := make(chan Outcome, 4)
	d := New(nil, engine, func(o Outcome) { outcomes <- o })

	first, err := d.Submit(balance.Input{TotalPax: 1})
	require.NoError(t, err)
	<-started

	second, err := d.Submit(balance.Input{TotalPax: 2})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	d.Close()
	got := collect(outcomes)
	require.Len(t, got, 1)
	assert.Equal(t, second, got[0].Ticket)
	require.NoError(t, got[0].Err)
	assert.Equal(t, 2.0, got[0].Result.Trim)
}

func TestDispatcherDeliversErrors(t *testing.T) {
	outcomes := make(chan Outcome, 1)
	d := New(zap.NewNop(), balance.NewCalculator(zap.NewNop()), func(o Outcome) { outcomes <- o })

	_, err := d.Submit(balance.Input{FuelKg: 3000, TripFuelKg: 1500, TotalPax: 52, TotalFreightKg: 7000})
	require.NoError(t, err)

	d.Close()
	got := collect(outcomes)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Result)
	assert.ErrorIs(t, got[0].Err, balance.ErrMassCeilingExceeded)
}

func TestDispatcherSubmitAfterClose(t *testing.T) {
	d := New(zap.NewNop(), balance.NewCalculator(nil), nil)
	d.Close()

	ticket, err := d.Submit(balance.Input{})
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, uuid.Nil, ticket)
}
