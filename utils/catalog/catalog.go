package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Category groups transform kinds by their role in a pipeline.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryIO        Category = "io"
	CategoryTransform Category = "transform"
	CategoryML        Category = "ml"
	CategorySQL       Category = "sql"
)

// Kind pairs a transform name with its category.
type Kind struct {
	Name     string
	Category Category
}

// ConfigKey documents a single configuration parameter of a transform.
type ConfigKey struct {
	Name string
	Doc  string
}

// Doc is the curated documentation record for a transform.
type Doc struct {
	Description string
	Config      []ConfigKey
	Example     string
}

// Schema is the curated input/output schema record for an IO connector.
type Schema struct {
	InputShape    string
	OutputShape   string
	ExampleInput  string
	ExampleOutput string
	Config        []ConfigKey
}

// ListKinds returns the known transform kinds for a category, sorted by name.
// CategoryAll returns the union of every category. An unknown category yields
// an empty result rather than an error.
func ListKinds(category Category) []Kind {
	var kinds []Kind
	if category == CategoryAll {
		for cat, names := range kindsByCategory {
			for _, name := range names {
				kinds = append(kinds, Kind{Name: name, Category: cat})
			}
		}
	} else {
		for _, name := range kindsByCategory[category] {
			kinds = append(kinds, Kind{Name: name, Category: category})
		}
	}

	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Name < kinds[j].Name
	})
	return kinds
}

// DescribeKind returns the curated documentation for a transform. The second
// return value is false when the transform is not in the local cache, which
// does not mean the transform is invalid.
func DescribeKind(name string) (*Doc, bool) {
	doc, ok := docs[name]
	return doc, ok
}

// DescribeSchema returns the curated schema record for an IO connector.
func DescribeSchema(name string) (*Schema, bool) {
	schema, ok := schemas[name]
	return schema, ok
}

// SchemaKinds returns the sorted list of connector names with curated schema
// information.
func SchemaKinds() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderKinds formats the kind list for a category as human-readable text.
func RenderKinds(category Category) string {
	var sb strings.Builder
	if category == CategoryAll {
		sb.WriteString("Available Beam YAML Transforms:\n\n")
		for _, kind := range ListKinds(CategoryAll) {
			fmt.Fprintf(&sb, "- %s (%s)\n", kind.Name, kind.Category)
		}
	} else {
		fmt.Fprintf(&sb, "Available %s transforms:\n\n", category)
		for _, kind := range ListKinds(category) {
			fmt.Fprintf(&sb, "- %s\n", kind.Name)
		}
	}
	return sb.String()
}

// RenderDoc formats the documentation for a transform, or a soft-miss message
// when the transform has no curated documentation.
func RenderDoc(name string) string {
	doc, ok := DescribeKind(name)
	if !ok {
		return fmt.Sprintf("Documentation for '%s' not found in local cache. "+
			"This transform may exist but detailed documentation is not available.", name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Transform: %s\n\n", name)
	fmt.Fprintf(&sb, "Description: %s\n\n", doc.Description)
	sb.WriteString("Configuration:\n")
	for _, key := range doc.Config {
		fmt.Fprintf(&sb, "- %s: %s\n", key.Name, key.Doc)
	}
	fmt.Fprintf(&sb, "\nExample:\n```yaml\n%s\n```", doc.Example)
	return sb.String()
}

// RenderSchema formats the schema record for a connector, or a soft-miss
// message listing the connectors that do have schema information.
func RenderSchema(name string) string {
	schema, ok := DescribeSchema(name)
	if !ok {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Schema information for '%s' not found in local cache.\n\n", name)
		sb.WriteString("Available connectors with schema information:\n")
		for _, known := range SchemaKinds() {
			fmt.Fprintf(&sb, "- %s\n", known)
		}
		return sb.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Schema Information for %s\n\n", name)

	if schema.OutputShape != "" {
		fmt.Fprintf(&sb, "## Output Schema\n%s\n\n", schema.OutputShape)
		if schema.ExampleOutput != "" {
			fmt.Fprintf(&sb, "**Example Output:**\n```\n%s\n```\n\n", schema.ExampleOutput)
		}
	}

	if schema.InputShape != "" {
		fmt.Fprintf(&sb, "## Input Schema\n%s\n\n", schema.InputShape)
		if schema.ExampleInput != "" {
			fmt.Fprintf(&sb, "**Example Input:**\n```\n%s\n```\n\n", schema.ExampleInput)
		}
	}

	sb.WriteString("## Configuration Parameters\n")
	for _, key := range schema.Config {
		fmt.Fprintf(&sb, "- **`%s`**: %s\n", key.Name, key.Doc)
	}

	sb.WriteString("\n## Usage Tips\n")
	for _, tip := range usageTips(name) {
		fmt.Fprintf(&sb, "- %s\n", tip)
	}
	return sb.String()
}

// usageTips returns connector-family guidance based on the connector name.
func usageTips(name string) []string {
	switch {
	case strings.Contains(name, "BigQuery"):
		return []string{
			"Ensure your Google Cloud project has BigQuery API enabled",
			"Use fully qualified table names (project:dataset.table)",
			"Consider using `selected_fields` for large tables to improve performance",
		}
	case strings.Contains(name, "PubSub"):
		return []string{
			"Ensure PubSub API is enabled in your Google Cloud project",
			"Use subscriptions for ReadFromPubSub to ensure message delivery",
			"Consider setting `id_label` for exactly-once processing",
		}
	case strings.Contains(name, "Text"):
		return []string{
			"Supports local files and cloud storage (gs://, s3://, etc.)",
			"Use glob patterns for reading multiple files",
		}
	case strings.Contains(name, "Csv"):
		return []string{
			"Schema is automatically inferred from the first few rows",
			"Use explicit schema for better type control",
		}
	}
	return nil
}
