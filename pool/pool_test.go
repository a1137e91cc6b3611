package pool

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"sync/atomic"
)

import (
	"github.com/timtadh/data-structures/errors"
)

func TestForEach(x *testing.T) {
	t := assert.New(x)
	for _, workers := range []int{0, 1, 4} {
		out := make([]int, 100)
		err := ForEach(len(out), workers, func(i int) error {
			out[i] = i * i
			return nil
		})
		t.Nil(err)
		for i, v := range out {
			t.Equal(i*i, v)
		}
	}
}

func TestForEachError(x *testing.T) {
	t := assert.New(x)
	var calls int64
	err := ForEach(1000, 3, func(i int) error {
		atomic.AddInt64(&calls, 1)
		if i == 10 {
			return errors.Errorf("bad item %v", i)
		}
		return nil
	})
	t.NotNil(err)
	t.Contains(err.Error(), "bad item 10")
	n := atomic.LoadInt64(&calls)
	t.True(n > 0 && n < 1000)
	err = ForEach(5, 1, func(i int) error {
		return errors.Errorf("bad item %v", i)
	})
	t.NotNil(err)
}

func TestShards(x *testing.T) {
	t := assert.New(x)
	t.Equal([][2]int{{0, 3}, {3, 6}, {6, 10}}, Shards(10, 3))
	t.Equal([][2]int{{0, 1}, {1, 2}}, Shards(2, 8))
	t.Equal(0, len(Shards(0, 4)))
	t.Equal([][2]int{{0, 5}}, Shards(5, 0))
}
