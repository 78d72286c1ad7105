package formstep

import (
	"io/fs"

	"github.com/goliatone/go-formstep/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can copy or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
