package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetSkip(t *testing.T) {
	assert.Equal(t, 0, Offset{Page: 1, PageSize: 6}.Skip())
	assert.Equal(t, 12, Offset{Page: 3, PageSize: 6}.Skip())
	assert.Equal(t, 0, Offset{Page: 0}.Skip())
	assert.Equal(t, 0, Offset{Page: -4, PageSize: 10}.Skip())
	assert.Equal(t, DefaultPageSize, Offset{Page: 2}.Skip())
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		count    int64
		pageSize int
		want     int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{13, 6, 3},
		{10, 0, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.count, tc.pageSize), "count=%d size=%d", tc.count, tc.pageSize)
	}
}
