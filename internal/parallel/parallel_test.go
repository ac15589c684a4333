package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestFor_DisjointSlots(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	out := make([]int, 17)
	For(len(out), func(i int) {
		out[i] = i * i
	}, cfg)

	for i, v := range out {
		assert.Equal(t, i*i, v, "slot %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, cfg)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		wantEnabled bool
		wantWorkers int
	}{
		{name: "single worker disables", n: 1, wantEnabled: false, wantWorkers: 1},
		{name: "explicit workers", n: 4, wantEnabled: true, wantWorkers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := WithWorkers(tt.n)
			assert.Equal(t, tt.wantEnabled, cfg.Enabled)
			assert.Equal(t, tt.wantWorkers, cfg.NumWorkers)
		})
	}

	assert.Equal(t, DefaultConfig(), WithWorkers(0))
}
