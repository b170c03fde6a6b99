package pipeline

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationResult holds the verdict of a structural validation pass. The
// verdict fails when at least one error was recorded; warnings never affect
// it.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// tableStepKinds are the step kinds whose config should name a table or
// query. Missing both is a common misconfiguration worth flagging, though
// not a structural error.
var tableStepKinds = map[string]bool{
	"ReadFromBigQuery": true,
	"WriteToBigQuery":  true,
}

// Validate parses a serialized pipeline document and checks minimal
// structural well-formedness. It never returns an error: malformed input is
// reported through the result so callers always get a presentable verdict.
func Validate(yamlText string) *ValidationResult {
	result := &ValidationResult{}

	var root interface{}
	if err := yaml.Unmarshal([]byte(yamlText), &root); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("YAML parsing error: %v", err))
		return result
	}

	rootMap, ok := root.(map[string]interface{})
	if !ok {
		result.Errors = append(result.Errors, "Pipeline must be a YAML object/dictionary")
		return result
	}

	_, hasPipeline := rootMap["pipeline"]
	_, hasTransforms := rootMap["transforms"]
	if !hasPipeline && !hasTransforms {
		result.Errors = append(result.Errors, "Pipeline must contain either 'pipeline' or 'transforms' key")
	}

	transforms := resolveTransforms(rootMap)

	if list, ok := transforms.([]interface{}); ok {
		validateSteps(list, result)
	} else {
		result.Errors = append(result.Errors, "Transforms must be a list")
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// resolveTransforms locates the step sequence, preferring the spelling nested
// under the pipeline wrapper key over a bare top-level transforms key. A
// pipeline wrapper that is not a mapping is returned as-is so it fails the
// sequence check. When neither spelling is present an empty sequence is
// returned so per-step checks are skipped without a second error.
func resolveTransforms(rootMap map[string]interface{}) interface{} {
	if raw, ok := rootMap["pipeline"]; ok {
		wrapper, ok := raw.(map[string]interface{})
		if !ok {
			return raw
		}
		if transforms, ok := wrapper["transforms"]; ok {
			return transforms
		}
	}
	if transforms, ok := rootMap["transforms"]; ok {
		return transforms
	}
	return []interface{}{}
}

func validateSteps(steps []interface{}, result *ValidationResult) {
	for i, raw := range steps {
		step, ok := raw.(map[string]interface{})
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Transform %d must be an object", i))
			continue
		}

		if _, ok := step["type"]; !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Transform %d missing required 'type' field", i))
		}

		stepType, _ := step["type"].(string)
		if tableStepKinds[stepType] {
			config, _ := step["config"].(map[string]interface{})
			if !hasNonEmpty(config, "table") && !hasNonEmpty(config, "query") {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Transform %d (%s) should specify either 'table' or 'query'", i, stepType))
			}
		}
	}
}

func hasNonEmpty(config map[string]interface{}, key string) bool {
	if config == nil {
		return false
	}
	value, ok := config[key]
	if !ok || value == nil {
		return false
	}
	if text, isString := value.(string); isString {
		return text != ""
	}
	return true
}

// Render formats the result the way the validation tools present it.
func (r *ValidationResult) Render() string {
	var sb strings.Builder
	if r.Valid {
		sb.WriteString("YAML pipeline validation passed!")
	} else {
		sb.WriteString("Validation failed:")
		for _, err := range r.Errors {
			sb.WriteString("\n- " + err)
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\n\nWarnings:")
		for _, warning := range r.Warnings {
			sb.WriteString("\n- " + warning)
		}
	}
	return sb.String()
}
