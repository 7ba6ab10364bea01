package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 5, Y: 7, Z: 9}, a.Add(b))
}

func TestPoint_Sub(t *testing.T) {
	a := Point{X: 4, Y: 5, Z: 6}
	b := Point{X: 1, Y: 2, Z: 3}

	assert.Equal(t, Point{X: 3, Y: 3, Z: 3}, a.Sub(b))
}

func TestPoint_Distance(t *testing.T) {
	dist := Point{X: 1, Y: 2, Z: 3}.Distance(Point{X: 4, Y: 5, Z: 3})
	assert.InEpsilon(t, 4.24264, dist, .01)

	assert.Equal(t, 0.0, Point{}.Distance(Point{}))
}

func TestPoint_String(t *testing.T) {
	assert.Equal(t, "X10.000 Y5.000 Z0.000", Point{X: 10, Y: 5}.String())
}
