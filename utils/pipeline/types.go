package pipeline

// Step represents a single transform in a pipeline document. Field order
// matters for serialization: generated documents list name before type so the
// output reads naturally.
type Step struct {
	Name   string                 `yaml:"name,omitempty"`
	Type   string                 `yaml:"type"`
	Input  string                 `yaml:"input,omitempty"`
	Config map[string]interface{} `yaml:"config,omitempty"`
}

// Spec is the transform sequence nested under the top-level pipeline key.
type Spec struct {
	Transforms []Step `yaml:"transforms"`
}

// Document is a Beam YAML pipeline document in its canonical wrapped form.
type Document struct {
	Pipeline Spec `yaml:"pipeline"`
}

// LastStepName returns the name of the last transform in the document, or the
// fallback when the document has no transforms yet.
func (d *Document) LastStepName(fallback string) string {
	if len(d.Pipeline.Transforms) == 0 {
		return fallback
	}
	return d.Pipeline.Transforms[len(d.Pipeline.Transforms)-1].Name
}
