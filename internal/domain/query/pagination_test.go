package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Pagination
		wantPage  int
		wantLimit int
	}{
		{name: "zero values take defaults", in: Pagination{}, wantPage: 1, wantLimit: 10},
		{name: "negative page clamped", in: Pagination{Page: -3, Limit: 25}, wantPage: 1, wantLimit: 25},
		{name: "oversized limit capped", in: Pagination{Page: 2, Limit: 5000}, wantPage: 2, wantLimit: 100},
		{name: "valid values untouched", in: Pagination{Page: 7, Limit: 50}, wantPage: 7, wantLimit: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, n.Page)
			assert.Equal(t, tt.wantLimit, n.Limit)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, Pagination{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 90, Pagination{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, Pagination{}.Offset())
}

func TestNewPageInfo_TotalPagesIsCeil(t *testing.T) {
	tests := []struct {
		total      int64
		limit      int
		totalPages int
	}{
		{total: 0, limit: 10, totalPages: 0},
		{total: 1, limit: 10, totalPages: 1},
		{total: 10, limit: 10, totalPages: 1},
		{total: 11, limit: 10, totalPages: 2},
		{total: 99, limit: 25, totalPages: 4},
		{total: 100, limit: 25, totalPages: 4},
		{total: 101, limit: 25, totalPages: 5},
	}

	for _, tt := range tests {
		info := NewPageInfo(Pagination{Page: 1, Limit: tt.limit}, tt.total)
		assert.Equal(t, tt.totalPages, info.TotalPages, "total=%d limit=%d", tt.total, tt.limit)
		assert.Equal(t, tt.total, info.Total)
	}
}
