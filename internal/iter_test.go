package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]string{"a", "b"})
	b := slices.All([]string{"c"})

	var keys []int
	var values []string
	for k, v := range IterSeq2Concat(a, b) {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"a", "b", "c"}, values)

	// Early stop.
	var count int
	for range IterSeq2Concat(a, b) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)

	merged := maps.Collect(IterSeq2Concat(maps.All(map[string]int{"x": 1}), maps.All(map[string]int{"y": 2})))
	assert.Equal(map[string]int{"x": 1, "y": 2}, merged)
}

func TestIterSeq2Len(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, IterSeq2Len(slices.All([]int{})))
	assert.Equal(3, IterSeq2Len(slices.All([]int{4, 5, 6})))
	assert.Equal(3, IterSeq2Len(IterSeq2Concat(slices.All([]int{1}), slices.All([]int{2, 3}))))
}
