package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yurifrl/ofxconv/pkg/config"
)

func TestNewXLSCharset(t *testing.T) {
	x := NewXLS(config.Files{}, testLogger())
	assert.Equal(t, "cp1252", x.charset)

	x = NewXLS(config.Files{Encoding: "utf-8"}, testLogger())
	assert.Equal(t, "cp1252", x.charset)

	x = NewXLS(config.Files{Encoding: "latin1"}, testLogger())
	assert.Equal(t, "latin1", x.charset)
}

func TestAllEmpty(t *testing.T) {
	assert.True(t, allEmpty(nil))
	assert.True(t, allEmpty([]string{"", "  ", "\t"}))
	assert.False(t, allEmpty([]string{"", "Data"}))
}
