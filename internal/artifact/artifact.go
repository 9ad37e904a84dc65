package artifact

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"symbology/internal/renderer"
)

// RenderArtifact represents an immutable rendered payload
type RenderArtifact struct {
	ConfigVersion string          `json:"configVersion"` // sha256:hex
	Renderer      string          `json:"renderer"`
	Payload       json.RawMessage `json:"payload"`
}

// GenerateArtifact renders r and stamps the payload with its content hash.
func GenerateArtifact(r *renderer.Renderer) (RenderArtifact, error) {
	payload, err := r.Render()
	if err != nil {
		return RenderArtifact{}, fmt.Errorf("cannot render %s: %w", r.Name(), err)
	}

	canonical, err := Canonicalize(payload)
	if err != nil {
		return RenderArtifact{}, err
	}

	return RenderArtifact{
		ConfigVersion: ComputeConfigVersion(canonical),
		Renderer:      r.Name(),
		Payload:       canonical,
	}, nil
}

// ComputeConfigVersion computes the SHA-256 hash of a canonical payload.
// Returns the hash prefixed with "sha256:".
func ComputeConfigVersion(canonical []byte) string {
	hash := sha256.Sum256(canonical)
	return "sha256:" + hex.EncodeToString(hash[:])
}

// Canonicalize rewrites JSON with sorted object keys and no whitespace.
// Numbers keep their original text.
func Canonicalize(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("cannot canonicalize payload: %w", err)
	}

	return json.Marshal(v)
}

// ToCanonicalJSON serializes the artifact to canonical JSON (sorted keys, no whitespace).
func (a RenderArtifact) ToCanonicalJSON() ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return Canonicalize(data)
}

// ToJSON serializes the artifact to pretty-printed JSON for human readability.
func (a RenderArtifact) ToJSON() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}
