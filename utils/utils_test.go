package utils

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, 23.333, FormatFloat(70.0/3.0, 3))
	assert.Equal(t, 27.5, FormatFloat(27.5, 1))
	assert.Equal(t, 30.0, FormatFloat(29.96, 1))
	assert.True(t, math.IsNaN(FormatFloat(math.NaN(), 3)))
	assert.True(t, math.IsInf(FormatFloat(math.Inf(1), 3), 1))
}

func TestIntMin(t *testing.T) {
	assert.Equal(t, 5, IntMin(1000, 5))
	assert.Equal(t, 0, IntMin(0, 5000))
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger("debug"))
	assert.NotNil(t, GetLogger(context.Background()))
	assert.Error(t, InitLogger("loud"))
}

func TestRecoverToError(t *testing.T) {
	run := func(fail bool) (err error) {
		defer RecoverToError(context.Background(), "job", &err)
		if fail {
			panic("boom")
		}
		return nil
	}

	assert.NoError(t, run(false))
	err := run(true)
	assert.EqualError(t, err, "job panic: boom")
}
