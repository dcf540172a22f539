package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	initOnce   sync.Once
)

// GetTranslator lazily creates the process-wide shader translator.
func GetTranslator() (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		ctx := context.Background()
		translator, initErr = gst.NewShaderTranslator(ctx)
	})
	return translator, initErr
}

// Fragment is a translated fragment shader and the names its variables were
// given by the translator.
type Fragment struct {
	Code  string
	names map[string]string
}

// MappedName returns the translated identifier for a uniform or varying
// declared in the WebGL2 source. Unknown names are returned unchanged.
func (f *Fragment) MappedName(name string) string {
	if mapped, ok := f.names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// TranslateFragment converts a WebGL2 fragment shader to GLSL 4.10 or ESSL.
func TranslateFragment(source string, isGLES bool) (*Fragment, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("shader translator unavailable: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if isGLES {
		outputFormat = gst.OutputFormatESSL
	}
	fsShader, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	names := make(map[string]string, len(fsShader.Variables))
	for name, v := range fsShader.Variables {
		names[name] = v.MappedName
	}
	return &Fragment{Code: fsShader.Code, names: names}, nil
}
