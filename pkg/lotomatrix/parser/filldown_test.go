package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillDownSequence(t *testing.T) {
	var f FillDown
	type step struct {
		v  string
		ok bool
	}
	in := []step{{"", false}, {"X", true}, {"", false}, {"", false}}
	want := []step{{"", false}, {"X", true}, {"X", true}, {"X", true}}

	for i, s := range in {
		v, ok := f.Update(s.v, s.ok)
		assert.Equal(t, want[i].ok, ok, "step %d", i)
		assert.Equal(t, want[i].v, v, "step %d", i)
	}
}

func TestFillDownReplaceAndReset(t *testing.T) {
	var f FillDown
	f.Update("A", true)
	v, _ := f.Update("B", true)
	assert.Equal(t, "B", v)
	v, ok := f.Update("", false)
	assert.True(t, ok)
	assert.Equal(t, "B", v)

	f.Reset()
	_, ok = f.Update("", false)
	assert.False(t, ok)
}
