package alias

import (
	"context"
	"fmt"
	"testing"

	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLaunch_PartialFailure(t *testing.T) {
	r, provider, host := newTestRegistry()
	doc := docOf(t, r, "/a", "/b", "/c")
	provider.gone["/b"] = true

	host.On("Launch", mock.Anything, "/a").Return(nil)
	host.On("Launch", mock.Anything, "/c").Return(nil)

	result := r.Launch(context.Background(), doc, All(doc))

	assert.Equal(t, []int{0, 2}, result.Succeeded)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 1, result.Failures[0].Index)
	assert.Equal(t, doc.At(1).ID, result.Failures[0].ID)
	assert.True(t, errors.IsErrorCode(result.Failures[0].Err, errors.ErrResolution))
	assert.Error(t, result.Err())
	assert.False(t, result.Cancelled)
	assert.Equal(t, 3, doc.Len())
	assert.Zero(t, provider.ledger.Outstanding())
	host.AssertExpectations(t)
	host.AssertNumberOfCalls(t, "Launch", 2)
}

func TestLaunch_HostFailureReleasesGrant(t *testing.T) {
	r, provider, host := newTestRegistry()
	doc := docOf(t, r, "/a", "/b")

	host.On("Launch", mock.Anything, "/a").Return(errors.New(errors.ErrLaunch, "no handler"))
	host.On("Launch", mock.Anything, "/b").Return(nil)

	result := r.Launch(context.Background(), doc, All(doc))

	assert.Equal(t, []int{1}, result.Succeeded)
	require.Len(t, result.Failures, 1)
	assert.True(t, errors.IsErrorCode(result.Failures[0].Err, errors.ErrLaunch))
	assert.Equal(t, int64(2), provider.ledger.Issued())
	assert.Zero(t, provider.ledger.Outstanding())
}

func TestReveal_RefreshesStale(t *testing.T) {
	r, provider, host := newTestRegistry()
	doc := docOf(t, r, "/old")
	id := doc.At(0).ID
	provider.moved["/old"] = "/new"

	host.On("Reveal", mock.Anything, "/new").Return(nil)

	result := r.Reveal(context.Background(), doc, []int{0})

	assert.NoError(t, result.Err())
	require.Len(t, result.Refreshed, 1)
	assert.Equal(t, id, result.Refreshed[0].ID)
	assert.Equal(t, "ref:/new", string(result.Refreshed[0].New))
	assert.Equal(t, "ref:/new", string(doc.At(0).Reference))
	assert.True(t, doc.Dirty())
	host.AssertExpectations(t)
}

func TestLaunch_Cancelled(t *testing.T) {
	r, provider, host := newTestRegistry()
	doc := docOf(t, r, "/a", "/b", "/c")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	host.On("Launch", mock.Anything, "/a").Run(func(mock.Arguments) { cancel() }).Return(nil)

	result := r.Launch(ctx, doc, All(doc))

	assert.True(t, result.Cancelled)
	assert.Equal(t, []int{0}, result.Succeeded)
	assert.Empty(t, result.Failures)
	assert.Zero(t, provider.ledger.Outstanding())
	host.AssertNumberOfCalls(t, "Launch", 1)
}

func TestLaunch_InvalidIndex(t *testing.T) {
	r, _, host := newTestRegistry()
	doc := docOf(t, r, "/a")
	host.On("Launch", mock.Anything, "/a").Return(nil)

	result := r.Launch(context.Background(), doc, []int{5, 0})

	assert.Equal(t, []int{0}, result.Succeeded)
	require.Len(t, result.Failures, 1)
	assert.True(t, errors.IsErrorCode(result.Failures[0].Err, errors.ErrInvalidInput))
}

func TestLaunch_GrantReleasedOnPanic(t *testing.T) {
	r, provider, host := newTestRegistry()
	doc := docOf(t, r, "/a")
	host.On("Launch", mock.Anything, "/a").Run(func(mock.Arguments) { panic("boom") })

	assert.Panics(t, func() { r.Launch(context.Background(), doc, []int{0}) })
	assert.Zero(t, provider.ledger.Outstanding())
}

func TestBatchResult_Err(t *testing.T) {
	assert.NoError(t, BatchResult{}.Err())

	err := BatchResult{Failures: []Failure{
		{Err: fmt.Errorf("one")},
		{Err: fmt.Errorf("two")},
	}}.Err()
	assert.ErrorContains(t, err, "one")
	assert.ErrorContains(t, err, "two")
}
