package common

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorCollector(t *testing.T) {
	c := &ErrorCollector{}
	assert.False(t, c.HasErrors())
	assert.Nil(t, c.Strings())

	c.New(nil)
	assert.False(t, c.HasErrors())

	c.New(errors.New("first"))
	c.New(errors.Errorf("second %d", 2))

	assert.True(t, c.HasErrors())
	assert.Equal(t, []string{"first", "second 2"}, c.Strings())
}
