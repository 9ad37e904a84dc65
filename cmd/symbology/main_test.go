package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symbology/internal/definition"
)

const validDefinition = `name: wind-arrows
field: WIND_DIRECT
visualVariables:
  - type: rotation
    field: WIND_DIRECT
    axis: heading
    rotationType: arithmetic
`

// captureOutput runs fn with stdout and stderr redirected and returns what was written
func captureOutput(t *testing.T, fn func() int) (stdout, stderr string, code int) {
	t.Helper()

	oldStdout, oldStderr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout, os.Stderr = outW, errW

	code = fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = oldStdout, oldStderr

	var outBuf, errBuf bytes.Buffer
	io.Copy(&outBuf, outR)
	io.Copy(&errBuf, errR)
	outR.Close()
	errR.Close()

	return outBuf.String(), errBuf.String(), code
}

// writeDefinition creates a temp directory holding symbology.yaml
func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, definition.DefaultFileName), []byte(content), 0644))
	return dir
}

func TestRun_Render(t *testing.T) {
	dir := writeDefinition(t, validDefinition)

	stdout, stderr, code := captureOutput(t, func() int {
		return run([]string{"render"}, nil, dir)
	})

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	assert.JSONEq(t, `{
		"field": "WIND_DIRECT",
		"visualVariables": [
			{"type": "rotation", "field": "WIND_DIRECT", "axis": "heading", "rotationType": "arithmetic"}
		]
	}`, stdout)
}

func TestRun_RenderYAML(t *testing.T) {
	dir := writeDefinition(t, validDefinition)

	stdout, _, code := captureOutput(t, func() int {
		return run([]string{"render", "--yaml"}, nil, dir)
	})

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "rotationType: arithmetic")
	assert.Contains(t, stdout, "type: rotation")
}

func TestRun_RenderArtifact(t *testing.T) {
	dir := writeDefinition(t, validDefinition)
	artifactPath := filepath.Join(dir, "out", "artifact.json")

	stdout, _, code := captureOutput(t, func() int {
		return run([]string{"render", "--artifact-file", artifactPath, "--artifact-stdout"}, nil, dir)
	})
	require.Equal(t, 0, code)

	var printed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &printed))
	assert.Equal(t, "wind-arrows", printed["renderer"])
	assert.True(t, strings.HasPrefix(printed["configVersion"].(string), "sha256:"))

	written, err := os.ReadFile(artifactPath)
	require.NoError(t, err)
	assert.JSONEq(t, stdout, string(written))
}

func TestRun_Check(t *testing.T) {
	dir := writeDefinition(t, validDefinition)

	stdout, stderr, code := captureOutput(t, func() int {
		return run([]string{"check"}, nil, dir)
	})

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Definition valid: wind-arrows (1 visual variable(s))")
}

func TestRun_CheckJSON(t *testing.T) {
	dir := writeDefinition(t, validDefinition)

	stdout, _, code := captureOutput(t, func() int {
		return run([]string{"check", "--json"}, nil, dir)
	})

	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{
		"valid": true,
		"name": "wind-arrows",
		"definitionPath": "`+filepath.Join(dir, definition.DefaultFileName)+`",
		"errors": [],
		"warnings": []
	}`, stdout)
}

func TestRun_InvalidEnum(t *testing.T) {
	dir := writeDefinition(t, "name: x\nvisualVariables:\n  - type: rotation\n    rotationType: bogus\n")

	stdout, stderr, code := captureOutput(t, func() int {
		return run([]string{"render"}, nil, dir)
	})

	assert.Equal(t, 3, code)
	assert.Empty(t, stdout, "nothing is rendered for an invalid definition")
	assert.Contains(t, stderr, "visualVariables[0].rotationType: 'bogus' is not valid, must be one of: geographic, arithmetic")
}

func TestRun_InvalidEnumCheckJSON(t *testing.T) {
	dir := writeDefinition(t, "name: x\nvisualVariables:\n  - type: rotation\n    rotationType: bogus\n")

	stdout, _, code := captureOutput(t, func() int {
		return run([]string{"check", "--json"}, nil, dir)
	})

	assert.Equal(t, 3, code)

	var out checkOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.False(t, out.Valid)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "visualVariables[0].rotationType", out.Errors[0].Location)
}

func TestRun_CIAnnotations(t *testing.T) {
	dir := writeDefinition(t, "name: x\nvisualVariables:\n  - type: rotation\n    valueExpressionTitle: Heading\n  - type: rotation\n")

	_, stderr, code := captureOutput(t, func() int {
		return run([]string{"check"}, []string{"CI=true"}, dir)
	})

	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "::error file=symbology.yaml::visualVariables[0].valueExpressionTitle: requires valueExpression")
	assert.Contains(t, stderr, "::warning file=symbology.yaml::visualVariables[1].field: neither field nor valueExpression is set")
	assert.Contains(t, stderr, "Validation failed: 1 error(s)")
}

func TestRun_WarningsDoNotFail(t *testing.T) {
	dir := writeDefinition(t, "name: bare\nvisualVariables:\n  - type: rotation\n    axis: heading\n    rotationType: arithmetic\n")

	stdout, stderr, code := captureOutput(t, func() int {
		return run([]string{"render"}, nil, dir)
	})

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "warning: visualVariables[0].field")
	assert.JSONEq(t, `{"visualVariables":[{"type":"rotation","axis":"heading","rotationType":"arithmetic"}]}`, stdout)
}

func TestRun_MissingDefinition(t *testing.T) {
	dir := t.TempDir()

	_, stderr, code := captureOutput(t, func() int {
		return run([]string{"check"}, nil, dir)
	})

	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "definition file not found")
}

func TestRun_UsageError(t *testing.T) {
	_, stderr, code := captureOutput(t, func() int {
		return run([]string{"draw"}, nil, t.TempDir())
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing subcommand")
}

func TestResolveDefinitionPath(t *testing.T) {
	for _, tt := range []struct {
		Name    string
		Flag    string
		Environ []string
		Want    string
	}{
		{Name: "default", Want: filepath.Join("/work", "symbology.yaml")},
		{Name: "relative flag", Flag: "defs/a.yaml", Want: filepath.Join("/work", "defs/a.yaml")},
		{Name: "absolute flag", Flag: "/abs/a.yaml", Want: "/abs/a.yaml"},
		{Name: "env", Environ: []string{"SYMBOLOGY_DEFINITION=b.yaml"}, Want: filepath.Join("/work", "b.yaml")},
		{Name: "flag beats env", Flag: "a.yaml", Environ: []string{"SYMBOLOGY_DEFINITION=b.yaml"}, Want: filepath.Join("/work", "a.yaml")},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, resolveDefinitionPath(tt.Flag, tt.Environ, "/work"))
		})
	}
}

// Property: Exit Code Consistency
// For any rotation type token, render SHALL succeed for declared tokens and
// exit with the invalid-definition code otherwise.
func TestRun_ExitCodeConsistency_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("exit code follows rotation type validity", prop.ForAll(
		func(token string) bool {
			dir := writeDefinition(t, "name: p\nvisualVariables:\n  - type: rotation\n    field: F\n    rotationType: \""+token+"\"\n")

			_, _, code := captureOutput(t, func() int {
				return run([]string{"render"}, nil, dir)
			})

			if token == "geographic" || token == "arithmetic" {
				return code == 0
			}
			return code == 3
		},
		gen.OneGenOf(
			gen.OneConstOf("geographic", "arithmetic"),
			gen.AlphaString(),
		),
	))

	properties.TestingRun(t)
}
