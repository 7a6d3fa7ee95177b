package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeClassTable_Shape(t *testing.T) {
	for _, cfg := range []SizeClassConfig{ConfigDefault, ConfigCoarse} {
		t.Run(cfg.Name, func(t *testing.T) {
			table := newSizeClassTable(cfg)
			require.Positive(t, table.numClasses)
			assert.Equal(t, cfg.Name, table.String())
			assert.Equal(t, 64<<10, table.maxBlock())

			prev := 0
			for i, size := range table.sizes {
				assert.Greater(t, size, prev, "class %d not ascending", i)
				assert.Zero(t, size%heapAlign, "class %d size %d not aligned", i, size)
				prev = size
			}
		})
	}
}

// TestSizeClassTable_Lookup tests that each request maps to the smallest fitting class.
func TestSizeClassTable_Lookup(t *testing.T) {
	table := newSizeClassTable(ConfigDefault)

	tests := []struct {
		request int
		want    int
	}{
		{1, 16},
		{16, 16},
		{17, 32},
		{100, 112},
		{512, 512},
		{65535, 65536},
		{65536, 65536},
	}
	for _, tt := range tests {
		class := table.getSizeClass(tt.request)
		require.Less(t, class, table.numClasses, "request %d", tt.request)
		assert.Equal(t, tt.want, table.blockSize(class), "request %d", tt.request)
	}

	assert.Equal(t, table.numClasses, table.getSizeClass(65537))
}

func TestSizeClassTable_LookupIsTight(t *testing.T) {
	table := newSizeClassTable(ConfigDefault)
	for n := 1; n <= table.maxBlock(); n += 37 {
		class := table.getSizeClass(n)
		require.GreaterOrEqual(t, table.blockSize(class), n)
		if class > 0 {
			require.Less(t, table.blockSize(class-1), n)
		}
	}
}
