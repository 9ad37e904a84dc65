package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"symbology/internal/artifact"
	"symbology/internal/cli"
	"symbology/internal/definition"
	"symbology/internal/validator"
)

func main() {
	exitCode := run(os.Args[1:], os.Environ(), ".")
	os.Exit(exitCode)
}

// run orchestrates the full execution flow.
// It returns an exit code (0 for success, non-zero for failure).
func run(args []string, environ []string, defaultDir string) int {
	cmd, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	ciMode := cmd.CIMode || getEnvBool(environ, "SYMBOLOGY_CI") || getEnvBool(environ, "CI")
	definitionPath := resolveDefinitionPath(cmd.DefinitionPath, environ, defaultDir)

	def, err := definition.LoadDefinitionFromPath(definitionPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "definition file not found: %s\n", definitionPath)
			return 3
		}
		result := validator.ValidationResult{
			Valid:  false,
			Errors: []validator.ValidationError{validator.FromError(err)},
		}
		return reportInvalid(cmd, result, definitionPath, ciMode)
	}

	result := validator.Validate(def)
	printWarnings(result, definitionPath, ciMode)
	if !result.Valid {
		return reportInvalid(cmd, result, definitionPath, ciMode)
	}

	if cmd.Subcommand == cli.SubcommandCheck {
		if cmd.JSONOutput {
			out, err := formatCheckJSON(result, definitionPath, def.Name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: cannot format check result: %v\n", err)
				return 1
			}
			fmt.Println(out)
		} else {
			fmt.Printf("✓ Definition valid: %s (%d visual variable(s))\n", def.Name, len(def.VisualVariables))
		}
		return 0
	}

	return runRender(cmd, def)
}

// runRender prints the rendered payload and writes the artifact if requested.
func runRender(cmd cli.Command, def definition.Definition) int {
	r, err := def.Renderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot build renderer: %v\n", err)
		return 1
	}
	defer r.Dispose()

	art, err := artifact.GenerateArtifact(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cmd.ArtifactFile != "" {
		if err := art.WriteToFile(cmd.ArtifactFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot write artifact: %s: %v\n", cmd.ArtifactFile, err)
			return 1
		}
	}

	if cmd.ArtifactStdout {
		jsonBytes, err := art.ToJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot serialize artifact: %v\n", err)
			return 1
		}
		fmt.Println(string(jsonBytes))
		return 0
	}

	payload, err := r.Render()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot render %s: %v\n", r.Name(), err)
		return 1
	}

	if cmd.YAMLOutput {
		out, err := payloadToYAML(payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot convert payload to YAML: %v\n", err)
			return 1
		}
		fmt.Print(string(out))
		return 0
	}

	fmt.Println(string(payload))
	return 0
}

// reportInvalid prints validation errors and returns the invalid-definition exit code
func reportInvalid(cmd cli.Command, result validator.ValidationResult, definitionPath string, ciMode bool) int {
	if cmd.Subcommand == cli.SubcommandCheck && cmd.JSONOutput {
		out, err := formatCheckJSON(result, definitionPath, "")
		if err == nil {
			fmt.Println(out)
			return 3
		}
	}

	file := filepath.Base(definitionPath)
	if ciMode {
		for _, verr := range result.Errors {
			fmt.Fprintln(os.Stderr, validator.FormatCIAnnotation(file, verr))
		}
		fmt.Fprintf(os.Stderr, "\n❌ Validation failed: %d error(s)\n", len(result.Errors))
	} else {
		for _, msg := range validator.FormatErrors(result) {
			fmt.Fprintln(os.Stderr, msg)
		}
	}
	return 3
}

// printWarnings prints non-fatal findings to stderr
func printWarnings(result validator.ValidationResult, definitionPath string, ciMode bool) {
	file := filepath.Base(definitionPath)
	for _, w := range result.Warnings {
		if ciMode {
			fmt.Fprintf(os.Stderr, "::warning file=%s::%s\n", file, validator.FormatError(w))
		} else {
			fmt.Fprintf(os.Stderr, "warning: %s\n", validator.FormatError(w))
		}
	}
}

// resolveDefinitionPath determines the definition path from flag, env var, or default
func resolveDefinitionPath(flagValue string, environ []string, defaultDir string) string {
	// Flag takes precedence
	if flagValue != "" {
		if filepath.IsAbs(flagValue) {
			return flagValue
		}
		return filepath.Join(defaultDir, flagValue)
	}

	if path := getEnv(environ, "SYMBOLOGY_DEFINITION"); path != "" {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(defaultDir, path)
	}

	return filepath.Join(defaultDir, definition.DefaultFileName)
}

// getEnv returns the value of name from the environment slice
func getEnv(environ []string, name string) string {
	prefix := name + "="
	for _, env := range environ {
		if strings.HasPrefix(env, prefix) {
			return strings.TrimPrefix(env, prefix)
		}
	}
	return ""
}

// getEnvBool checks if an environment variable is set to a truthy value
func getEnvBool(environ []string, name string) bool {
	val := strings.ToLower(getEnv(environ, name))
	return val == "true" || val == "1" || val == "yes"
}

type checkOutput struct {
	Valid          bool           `json:"valid"`
	Name           string         `json:"name,omitempty"`
	DefinitionPath string         `json:"definitionPath"`
	Errors         []checkFinding `json:"errors"`
	Warnings       []checkFinding `json:"warnings"`
}

type checkFinding struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(result validator.ValidationResult, definitionPath, name string) (string, error) {
	out := checkOutput{
		Valid:          result.Valid,
		Name:           name,
		DefinitionPath: definitionPath,
		Errors:         toFindings(result.Errors),
		Warnings:       toFindings(result.Warnings),
	}

	data, err := json.Marshal(&out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func toFindings(errs []validator.ValidationError) []checkFinding {
	findings := make([]checkFinding, 0, len(errs))
	for _, e := range errs {
		findings = append(findings, checkFinding{
			Location: e.Location(),
			Message:  validator.FormatError(e),
		})
	}
	return findings
}

// payloadToYAML re-encodes a JSON payload as block-style YAML
func payloadToYAML(payload []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(payload, &v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}
