package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake(t *testing.T) {
	start := time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)
	c := NewFake(start)
	assert.True(t, c.Now().Equal(start))

	c.Advance(90 * time.Minute)
	assert.True(t, c.Now().Equal(start.Add(90*time.Minute)), "after Advance: %v", c.Now())

	later := time.Date(2024, 3, 5, 8, 0, 0, 0, time.Local)
	c.Set(later)
	assert.True(t, c.Now().Equal(later), "after Set: %v", c.Now())
}

func TestFunc(t *testing.T) {
	fixed := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	var c Clock = Func(func() time.Time { return fixed })
	assert.True(t, c.Now().Equal(fixed))
}

func TestReal(t *testing.T) {
	before := time.Now()
	assert.False(t, Real{}.Now().Before(before))
}
