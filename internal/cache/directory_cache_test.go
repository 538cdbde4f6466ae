package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shidduch-link/matchmaker-web/internal/models"
)

type fakeSource struct {
	directory []models.Matchmaker
	err       error
	calls     int
}

func (f *fakeSource) FetchMatchmakers(ctx context.Context) ([]models.Matchmaker, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.directory, nil
}

func TestGetFetchesOnceWithinTTL(t *testing.T) {
	source := &fakeSource{directory: []models.Matchmaker{{ID: 1, Name: "Miriam"}}}
	dc := NewDirectoryCache(source, 300)

	first := dc.Get(context.Background())
	second := dc.Get(context.Background())

	assert.Equal(t, 1, source.calls)
	assert.Len(t, first, 1)
	assert.Equal(t, first, second)
}

func TestGetServesStaleOnFetchFailure(t *testing.T) {
	source := &fakeSource{directory: []models.Matchmaker{{ID: 1, Name: "Miriam"}}}
	dc := NewDirectoryCache(source, 300)

	dc.Get(context.Background())
	dc.Invalidate()

	source.err = errors.New("connection refused")
	directory := dc.Get(context.Background())

	assert.Equal(t, 2, source.calls)
	assert.Len(t, directory, 1)
	assert.Equal(t, "Miriam", directory[0].Name)
}

func TestGetEmptyWhenNothingEverFetched(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	dc := NewDirectoryCache(source, 300)

	directory := dc.Get(context.Background())

	assert.NotNil(t, directory)
	assert.Empty(t, directory)
}
