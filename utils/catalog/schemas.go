package catalog

// schemas holds curated input/output schema information for common IO
// connectors.
var schemas = map[string]*Schema{
	"ReadFromBigQuery": {
		OutputShape:   "Depends on the BigQuery table schema - automatically inferred from table metadata",
		ExampleOutput: "Row(id: int64, name: string, timestamp: timestamp, amount: float64)",
		Config: []ConfigKey{
			{Name: "table", Doc: "string (project:dataset.table) - Required if query not specified"},
			{Name: "query", Doc: "string (SQL query) - Required if table not specified"},
			{Name: "use_standard_sql", Doc: "boolean (default: true) - Use standard SQL syntax"},
			{Name: "selected_fields", Doc: "array[string] (optional) - Specific fields to read"},
			{Name: "row_restriction", Doc: "string (optional) - WHERE clause for filtering"},
		},
	},
	"WriteToBigQuery": {
		InputShape:   "Beam Row with fields matching target table schema",
		ExampleInput: "Row(id: int64, name: string, timestamp: timestamp, amount: float64)",
		Config: []ConfigKey{
			{Name: "table", Doc: "string (project:dataset.table) - Target table reference"},
			{Name: "create_disposition", Doc: "string (CREATE_IF_NEEDED|CREATE_NEVER) - Table creation behavior"},
			{Name: "write_disposition", Doc: "string (WRITE_TRUNCATE|WRITE_APPEND|WRITE_EMPTY) - Write behavior"},
			{Name: "schema", Doc: "array[object] (optional) - Table schema if creating new table"},
			{Name: "clustering_fields", Doc: "array[string] (optional) - Fields for table clustering"},
			{Name: "time_partitioning", Doc: "object (optional) - Time partitioning configuration"},
		},
	},
	"ReadFromText": {
		OutputShape:   "Row(line: string) - Each line as a string field",
		ExampleOutput: "Row(line: 'sample text line')",
		Config: []ConfigKey{
			{Name: "path", Doc: "string (file path or pattern) - Input file location"},
			{Name: "compression_type", Doc: "string (AUTO|UNCOMPRESSED|GZIP|BZIP2) - Compression format"},
		},
	},
	"WriteToText": {
		InputShape:   "Any Beam type - will be converted to string representation",
		ExampleInput: "Row(message: 'Hello World') -> 'Row(message=Hello World)'",
		Config: []ConfigKey{
			{Name: "path", Doc: "string (output file path) - Output location"},
			{Name: "file_name_suffix", Doc: "string (optional) - Suffix for output files"},
			{Name: "num_shards", Doc: "integer (optional) - Number of output shards"},
			{Name: "shard_name_template", Doc: "string (optional) - Template for shard naming"},
		},
	},
	"ReadFromCsv": {
		OutputShape:   "Row with fields based on CSV headers and inferred types",
		ExampleOutput: "Row(id: int64, name: string, age: int64, salary: float64)",
		Config: []ConfigKey{
			{Name: "path", Doc: "string (CSV file path) - Input CSV location"},
			{Name: "delimiter", Doc: "string (default: ',') - Field separator"},
			{Name: "header", Doc: "boolean (default: true) - Whether first row contains headers"},
			{Name: "schema", Doc: "array[object] (optional) - Explicit schema definition"},
			{Name: "skip_blank_lines", Doc: "boolean (default: true) - Skip empty lines"},
		},
	},
	"WriteToCsv": {
		InputShape:   "Beam Row with named fields",
		ExampleInput: "Row(id: int64, name: string, age: int64)",
		Config: []ConfigKey{
			{Name: "path", Doc: "string (output CSV path) - Output location"},
			{Name: "delimiter", Doc: "string (default: ',') - Field separator"},
			{Name: "header", Doc: "boolean (default: true) - Include header row"},
		},
	},
	"ReadFromPubSub": {
		OutputShape:   "Row(data: bytes, attributes: map[string, string], timestamp: timestamp)",
		ExampleOutput: "Row(data: b'message content', attributes: {'key': 'value'}, timestamp: 2023-01-01T00:00:00Z)",
		Config: []ConfigKey{
			{Name: "topic", Doc: "string (projects/project/topics/topic) - PubSub topic"},
			{Name: "subscription", Doc: "string (projects/project/subscriptions/sub) - PubSub subscription"},
			{Name: "id_label", Doc: "string (optional) - Attribute for deduplication"},
			{Name: "timestamp_attribute", Doc: "string (optional) - Attribute containing event timestamp"},
		},
	},
	"WriteToPubSub": {
		InputShape:   "Row with 'data' field (bytes) and optional 'attributes' field (map)",
		ExampleInput: "Row(data: b'message', attributes: {'source': 'pipeline'})",
		Config: []ConfigKey{
			{Name: "topic", Doc: "string (projects/project/topics/topic) - Target PubSub topic"},
			{Name: "id_label", Doc: "string (optional) - Attribute for deduplication"},
			{Name: "timestamp_attribute", Doc: "string (optional) - Attribute for event timestamp"},
		},
	},
	"ReadFromParquet": {
		OutputShape:   "Row with fields based on Parquet schema",
		ExampleOutput: "Row(id: int64, name: string, nested: Row(field1: string, field2: int64))",
		Config: []ConfigKey{
			{Name: "path", Doc: "string (parquet file path) - Input Parquet location"},
			{Name: "columns", Doc: "array[string] (optional) - Specific columns to read"},
		},
	},
	"WriteToParquet": {
		InputShape:   "Beam Row with typed fields",
		ExampleInput: "Row(id: int64, name: string, data: array[float64])",
		Config: []ConfigKey{
			{Name: "path", Doc: "string (output parquet path) - Output location"},
			{Name: "file_name_suffix", Doc: "string (optional) - Suffix for output files"},
			{Name: "num_shards", Doc: "integer (optional) - Number of output shards"},
		},
	},
	"ReadFromJson": {
		OutputShape:   "Row with fields based on JSON structure",
		ExampleOutput: "Row(id: int64, data: Row(name: string, values: array[int64]))",
		Config: []ConfigKey{
			{Name: "path", Doc: "string (JSON file path) - Input JSON location"},
			{Name: "schema", Doc: "object (optional) - Explicit schema for JSON parsing"},
		},
	},
	"WriteToJson": {
		InputShape:   "Beam Row - will be serialized to JSON",
		ExampleInput: "Row(id: 123, name: 'example', data: [1, 2, 3])",
		Config: []ConfigKey{
			{Name: "path", Doc: "string (output JSON path) - Output location"},
			{Name: "file_name_suffix", Doc: "string (optional) - Suffix for output files"},
		},
	},
}
