package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarksTotal(t *testing.T) {
	assert.Equal(t, 0, MarksTotal(nil))
	assert.Equal(t, 0, MarksTotal(map[string]int{}))
	assert.Equal(t, 17, MarksTotal(map[string]int{"listening": 8, "speaking": 9}))
	assert.Equal(t, 5, MarksTotal(map[string]int{"writing": 5, "reading": 0}))
}
