package pkgio_test

import (
	"errors"
	"io"
	"testing"

	pkgio "github.com/matheuscscp/net-sock/pkg/io"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestClose(t *testing.T) {
	errA := errors.New("a")
	errC := errors.New("c")
	a, b, c := &closer{err: errA}, &closer{}, &closer{err: errC}

	err := pkgio.Close(a, nil, b, c)
	require.Error(t, err)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.True(t, c.closed)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
}

func TestCloseNoErrors(t *testing.T) {
	assert.NoError(t, pkgio.Close())
	assert.NoError(t, pkgio.Close(&closer{}, io.NopCloser(nil)))
}

func TestCloseAll(t *testing.T) {
	cs := []*closer{{}, {err: io.ErrClosedPipe}}
	err := pkgio.CloseAll(cs)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.True(t, cs[0].closed)
	assert.True(t, cs[1].closed)
}
