package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappedNameFallsBackToSourceName(t *testing.T) {
	f := &Fragment{names: map[string]string{
		"threshold":         "_uthreshold",
		"textureCoordinate": "",
	}}
	assert.Equal(t, "_uthreshold", f.MappedName("threshold"))
	assert.Equal(t, "textureCoordinate", f.MappedName("textureCoordinate"))
	assert.Equal(t, "texelWidth", f.MappedName("texelWidth"))
}
