package renderer

import (
	"encoding/json"
	"errors"
	"fmt"

	"symbology/internal/visual"
)

var (
	// ErrDisposed is returned by mutating operations after Dispose
	ErrDisposed = errors.New("renderer has been disposed")

	// ErrIndexOutOfRange is returned when no visual variable exists at an index
	ErrIndexOutOfRange = errors.New("visual variable index out of range")

	// ErrNilVariable is returned when binding a nil visual variable
	ErrNilVariable = errors.New("visual variable is nil")
)

// ChangeHook receives the re-rendered payload after every mutation
type ChangeHook func(payload []byte) error

// Option configures a Renderer
type Option func(*Renderer)

// WithChangeHook registers the hook fired after each mutation
func WithChangeHook(hook ChangeHook) Option {
	return func(r *Renderer) {
		r.onChange = hook
	}
}

// WithField sets the renderer's default attribute field
func WithField(field string) Option {
	return func(r *Renderer) {
		r.field.Set(field)
	}
}

// Renderer owns the visual variables of one map renderer.
// Variables are bound, updated and unbound through explicit calls; each
// successful mutation re-renders the payload and passes it to the change hook.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	name      string
	field     visual.Optional[string]
	variables []visual.VisualVariable
	onChange  ChangeHook
	disposed  bool
}

// New creates an empty renderer
func New(name string, opts ...Option) *Renderer {
	r := &Renderer{name: name}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the renderer name
func (r *Renderer) Name() string {
	return r.name
}

// Field returns the default attribute field
func (r *Renderer) Field() visual.Optional[string] {
	return r.field
}

// Len returns the number of bound visual variables
func (r *Renderer) Len() int {
	return len(r.variables)
}

// Variables returns the bound visual variables in binding order.
// The slice is a copy; the variables themselves are shared.
func (r *Renderer) Variables() []visual.VisualVariable {
	vars := make([]visual.VisualVariable, len(r.variables))
	copy(vars, r.variables)
	return vars
}

// Bind appends a visual variable
func (r *Renderer) Bind(v visual.VisualVariable) error {
	if r.disposed {
		return ErrDisposed
	}
	if v == nil {
		return ErrNilVariable
	}

	r.variables = append(r.variables, v)
	return r.changed()
}

// Update calls fn with the variable at index i.
// If fn fails its error is returned and the hook is not fired.
func (r *Renderer) Update(i int, fn func(visual.VisualVariable) error) error {
	if r.disposed {
		return ErrDisposed
	}
	if i < 0 || i >= len(r.variables) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	if err := fn(r.variables[i]); err != nil {
		return err
	}
	return r.changed()
}

// Unbind removes the variable at index i
func (r *Renderer) Unbind(i int) error {
	if r.disposed {
		return ErrDisposed
	}
	if i < 0 || i >= len(r.variables) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	last := len(r.variables) - 1
	copy(r.variables[i:], r.variables[i+1:])
	r.variables[last] = nil
	r.variables = r.variables[:last]
	return r.changed()
}

// Render serializes the renderer into the JSON consumed by the mapping engine
func (r *Renderer) Render() ([]byte, error) {
	e := rendererEncoder{
		Field:           r.field.Ptr(),
		VisualVariables: r.variables,
	}
	if e.VisualVariables == nil {
		e.VisualVariables = []visual.VisualVariable{}
	}
	return json.Marshal(&e)
}

// Dispose releases all variables. Later mutations return ErrDisposed.
func (r *Renderer) Dispose() {
	r.variables = nil
	r.onChange = nil
	r.disposed = true
}

// Disposed reports whether Dispose has been called
func (r *Renderer) Disposed() bool {
	return r.disposed
}

func (r *Renderer) changed() error {
	if r.onChange == nil {
		return nil
	}

	payload, err := r.Render()
	if err != nil {
		return fmt.Errorf("cannot render %s: %w", r.name, err)
	}

	if err := r.onChange(payload); err != nil {
		return fmt.Errorf("change hook: %w", err)
	}
	return nil
}

type rendererEncoder struct {
	Field           *string                 `json:"field,omitempty"`
	VisualVariables []visual.VisualVariable `json:"visualVariables"`
}
