package catalog

// docs holds curated documentation for the transforms most commonly used in
// generated pipelines. The cache is intentionally a subset of the full
// documentation site.
var docs = map[string]*Doc{
	"Filter": {
		Description: "Filters elements based on a condition",
		Config: []ConfigKey{
			{Name: "condition", Doc: "Expression or callable to filter elements"},
			{Name: "language", Doc: "Language for the condition (python, javascript, etc.)"},
		},
		Example: `type: Filter
input: InputData
config:
  condition: "element.age > 18"
  language: python`,
	},
	"LogForTesting": {
		Description: "Logs elements for debugging and testing purposes",
		Config: []ConfigKey{
			{Name: "level", Doc: "Log level (INFO, DEBUG, WARN, ERROR)"},
			{Name: "prefix", Doc: "Optional prefix for log messages"},
		},
		Example: `type: LogForTesting
input: InputData
config:
  level: "INFO"
  prefix: "Processing: "`,
	},
	"Combine": {
		Description: "Groups and combines records sharing common fields",
		Config: []ConfigKey{
			{Name: "group_by", Doc: "Fields to group by"},
			{Name: "combine", Doc: "Aggregation functions (sum, max, min, count, etc.)"},
		},
		Example: `type: Combine
input: InputData
config:
  group_by: ["category"]
  combine:
    total_sales:
      sum: "sales_amount"
    count:
      count: "*"`,
	},
	"ReadFromBigQuery": {
		Description: "Reads data from Google BigQuery",
		Config: []ConfigKey{
			{Name: "table", Doc: "BigQuery table reference (project:dataset.table)"},
			{Name: "query", Doc: "SQL query to execute (alternative to table)"},
			{Name: "use_standard_sql", Doc: "Whether to use standard SQL (default: true)"},
		},
		Example: `type: ReadFromBigQuery
config:
  table: "my-project:my_dataset.my_table"
# OR
type: ReadFromBigQuery
config:
  query: "SELECT * FROM ` + "`my-project.my_dataset.my_table`" + ` WHERE date > '2023-01-01'"`,
	},
	"WriteToBigQuery": {
		Description: "Writes data to Google BigQuery",
		Config: []ConfigKey{
			{Name: "table", Doc: "BigQuery table reference (project:dataset.table)"},
			{Name: "create_disposition", Doc: "CREATE_IF_NEEDED or CREATE_NEVER"},
			{Name: "write_disposition", Doc: "WRITE_TRUNCATE, WRITE_APPEND, or WRITE_EMPTY"},
		},
		Example: `type: WriteToBigQuery
input: ProcessedData
config:
  table: "my-project:my_dataset.output_table"
  create_disposition: "CREATE_IF_NEEDED"
  write_disposition: "WRITE_APPEND"`,
	},
}
