package page_test

import (
	"dsmovie/page"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        page.Request
		wantLimit  int
		wantNumber int
		wantOffset int
	}{
		{name: "defaults when empty", req: page.Request{}, wantLimit: page.DefaultSize, wantNumber: 0, wantOffset: 0},
		{name: "second page of twelve", req: page.Of(1, 12), wantLimit: 12, wantNumber: 1, wantOffset: 12},
		{name: "size clamped to max", req: page.Of(2, 1000), wantLimit: page.MaxSize, wantNumber: 2, wantOffset: 2 * page.MaxSize},
		{name: "negative page becomes first", req: page.Of(-3, 5), wantLimit: 5, wantNumber: 0, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLimit, tt.req.Limit())
			assert.Equal(t, tt.wantNumber, tt.req.Number())
			assert.Equal(t, tt.wantOffset, tt.req.Offset())
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("should compute total pages", func(t *testing.T) {
		p := page.New([]int{1, 2, 3}, page.Of(0, 3), 7)

		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, int64(7), p.TotalElements)
		assert.Equal(t, 3, p.Size)
		assert.False(t, p.IsEmpty())
	})

	t.Run("should return empty content instead of nil", func(t *testing.T) {
		p := page.Empty[string](page.Of(0, 12))

		assert.NotNil(t, p.Content)
		assert.True(t, p.IsEmpty())
		assert.Equal(t, 0, p.TotalPages)
	})
}

func TestMap(t *testing.T) {
	p := page.New([]int{1, 2}, page.Of(1, 2), 4)

	mapped := page.Map(p, strconv.Itoa)

	assert.Equal(t, []string{"1", "2"}, mapped.Content)
	assert.Equal(t, p.Number, mapped.Number)
	assert.Equal(t, p.TotalPages, mapped.TotalPages)
	assert.Equal(t, p.TotalElements, mapped.TotalElements)
}
