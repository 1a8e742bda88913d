package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestDescribeDiff(t *testing.T) {
	mode := domain.ViewTablet
	assert.Equal(t, "no change", DescribeDiff(nil))
	assert.Equal(t, "view mode", DescribeDiff(&domain.StateDiff{ViewMode: &mode}))
	assert.Equal(t, "document, history", DescribeDiff(&domain.StateDiff{
		Document: &domain.Document{},
		History:  &domain.HistoryDelta{Past: 1},
	}))
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, HandleExecutionError(nil))
	assert.NoError(t, HandleExecutionError(context.Canceled))
	assert.NoError(t, HandleExecutionError(fmt.Errorf("read: %w", io.EOF)))
	assert.NoError(t, HandleExecutionError(errInterrupted))

	boom := errors.New("boom")
	assert.ErrorIs(t, HandleExecutionError(boom), boom)
}

func TestInterruptibleReader(t *testing.T) {
	cancel := make(chan struct{})
	r := NewInterruptibleReader(strings.NewReader("abc"), cancel)

	buf := make([]byte, 1)
	n, err := r.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	close(cancel)
	_, err = r.Read(buf)
	assert.ErrorIs(t, err, errInterrupted)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(io.Discard))
}
