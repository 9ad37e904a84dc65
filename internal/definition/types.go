package definition

import (
	"symbology/internal/renderer"
	"symbology/internal/visual"
)

// DefaultFileName is the definition file LoadDefinition looks for
const DefaultFileName = "symbology.yaml"

// Definition describes one renderer and its visual variables
type Definition struct {
	Name            string                  // e.g., "wind-arrows"
	Field           visual.Optional[string] // Default attribute field
	VisualVariables []visual.VisualVariable
}

// Renderer builds a renderer owning the definition's visual variables.
// Each variable is bound in order, so a change hook passed in opts fires once per variable.
func (d Definition) Renderer(opts ...renderer.Option) (*renderer.Renderer, error) {
	if field, ok := d.Field.Get(); ok {
		opts = append([]renderer.Option{renderer.WithField(field)}, opts...)
	}

	r := renderer.New(d.Name, opts...)
	for _, v := range d.VisualVariables {
		if err := r.Bind(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}
