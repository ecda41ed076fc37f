package helpers

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldErrors(t *testing.T) {
	t.Parallel()

	assert.NoError(t, FoldErrors(nil))
	assert.NoError(t, FoldErrors([]error{nil, nil}))
	err := FoldErrors([]error{fmt.Errorf("display"), nil, fmt.Errorf("input")})
	require.Error(t, err)
	assert.Equal(t, "display\ninput", err.Error())
}

func TestWrapErrChan(t *testing.T) {
	t.Parallel()

	wg := sync.WaitGroup{}
	errch := make(chan error, 2)
	wg.Add(2)
	go WrapErrChan(&wg, errch, func() error { return nil })
	go WrapErrChan(&wg, errch, func() error { return fmt.Errorf("power init") })
	wg.Wait()
	close(errch)
	err := FoldErrChan(errch)
	require.Error(t, err)
	assert.Equal(t, "power init", err.Error())
}

func TestIntMillisecondDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 150*time.Millisecond, IntMillisecondDefault(0, 150*time.Millisecond))
	assert.Equal(t, 120*time.Millisecond, IntMillisecondDefault(120, 150*time.Millisecond))
}
