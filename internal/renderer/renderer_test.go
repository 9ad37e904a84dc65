package renderer

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symbology/internal/visual"
)

type hookRecorder struct {
	payloads []string
	err      error
}

func (h *hookRecorder) hook(payload []byte) error {
	h.payloads = append(h.payloads, string(payload))
	return h.err
}

func TestRenderer_Lifecycle(t *testing.T) {
	rec := &hookRecorder{}
	r := New("wind-arrows", WithField("WIND_DIRECT"), WithChangeHook(rec.hook))

	payload, err := r.Render()
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"WIND_DIRECT","visualVariables":[]}`, string(payload))
	assert.Empty(t, rec.payloads, "construction does not fire the hook")

	rv := visual.NewRotationVariable()
	require.NoError(t, r.Bind(rv))
	require.Len(t, rec.payloads, 1)
	assert.JSONEq(t, `{"field":"WIND_DIRECT","visualVariables":[{"type":"rotation"}]}`, rec.payloads[0])

	require.NoError(t, r.Update(0, func(v visual.VisualVariable) error {
		rot := v.(*visual.RotationVariable)
		rot.Axis.Set("heading")
		rot.RotationType.Set(visual.Arithmetic)
		return nil
	}))
	require.Len(t, rec.payloads, 2)
	assert.JSONEq(t,
		`{"field":"WIND_DIRECT","visualVariables":[{"type":"rotation","axis":"heading","rotationType":"arithmetic"}]}`,
		rec.payloads[1])

	require.NoError(t, r.Unbind(0))
	require.Len(t, rec.payloads, 3)
	assert.JSONEq(t, `{"field":"WIND_DIRECT","visualVariables":[]}`, rec.payloads[2])

	r.Dispose()
	assert.True(t, r.Disposed())
	assert.Equal(t, 0, r.Len())
	assert.ErrorIs(t, r.Bind(visual.NewRotationVariable()), ErrDisposed)
	assert.ErrorIs(t, r.Update(0, func(visual.VisualVariable) error { return nil }), ErrDisposed)
	assert.ErrorIs(t, r.Unbind(0), ErrDisposed)
	assert.Len(t, rec.payloads, 3, "disposed renderer never fires the hook")
}

func TestRenderer_Errors(t *testing.T) {
	rec := &hookRecorder{}
	r := New("errors", WithChangeHook(rec.hook))

	assert.ErrorIs(t, r.Bind(nil), ErrNilVariable)
	assert.ErrorIs(t, r.Unbind(0), ErrIndexOutOfRange)
	assert.ErrorIs(t, r.Update(-1, func(visual.VisualVariable) error { return nil }), ErrIndexOutOfRange)

	require.NoError(t, r.Bind(visual.NewRotationVariable()))

	updateErr := errors.New("rejected")
	err := r.Update(0, func(visual.VisualVariable) error { return updateErr })
	assert.ErrorIs(t, err, updateErr)
	assert.Len(t, rec.payloads, 1, "failed update does not fire the hook")

	rec.err = errors.New("hook failed")
	err = r.Bind(visual.NewRotationVariable())
	assert.ErrorIs(t, err, rec.err)
	assert.Equal(t, 2, r.Len(), "mutation is kept when the hook fails")
}

func TestRenderer_RenderError(t *testing.T) {
	rec := &hookRecorder{}
	r := New("bad-enum", WithChangeHook(rec.hook))

	rv := visual.NewRotationVariable()
	rv.RotationType.Set(visual.RotationType(99))

	err := r.Bind(rv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot render bad-enum")
	assert.Empty(t, rec.payloads)
}

func TestRenderer_UnbindReleasesVariable(t *testing.T) {
	r := New("unbind")
	first, second, third := visual.NewRotationVariable(), visual.NewRotationVariable(), visual.NewRotationVariable()
	for _, v := range []visual.VisualVariable{first, second, third} {
		require.NoError(t, r.Bind(v))
	}

	require.NoError(t, r.Unbind(1))
	require.Equal(t, 2, r.Len())
	assert.Same(t, first, r.Variables()[0])
	assert.Same(t, third, r.Variables()[1])

	backing := r.variables[:cap(r.variables)]
	assert.Nil(t, backing[2], "vacated slot must not keep the removed variable alive")
}

func TestRenderer_VariablesIsACopy(t *testing.T) {
	r := New("copy")
	require.NoError(t, r.Bind(visual.NewRotationVariable()))

	vars := r.Variables()
	vars[0] = nil
	assert.NotNil(t, r.Variables()[0])
	assert.Equal(t, "copy", r.Name())
	assert.False(t, r.Field().IsSet())
}

// Property: the hook fires exactly once per successful mutation
func TestRenderer_HookCount_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("one hook call per bind", prop.ForAll(
		func(n int) bool {
			rec := &hookRecorder{}
			r := New("count", WithChangeHook(rec.hook))
			for i := 0; i < n; i++ {
				if err := r.Bind(visual.NewRotationVariable()); err != nil {
					return false
				}
			}
			return len(rec.payloads) == n && r.Len() == n
		},
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}
