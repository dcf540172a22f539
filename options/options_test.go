package options

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Register(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, 1280, *o.Width)
	assert.Equal(t, 720, *o.Height)
	assert.Equal(t, "h264", *o.Codec)
	assert.False(t, *o.Record)
	assert.Equal(t, 600, o.Frames())
}

func TestRegisterParsesFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Register(fs)
	require.NoError(t, fs.Parse([]string{"-config", "edges.yaml", "-watch", "-record", "-duration", "2", "-fps", "30"}))

	assert.Equal(t, "edges.yaml", *o.Config)
	assert.True(t, *o.Watch)
	assert.True(t, *o.Record)
	assert.Equal(t, 60, o.Frames())
}
