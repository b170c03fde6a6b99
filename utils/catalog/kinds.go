package catalog

// kindsByCategory holds the known transform names from the Beam YAML
// documentation. The ml and sql categories are accepted as filters but have
// no curated entries yet.
var kindsByCategory = map[Category][]string{
	CategoryTransform: {
		"AnomalyDetection",
		"AssertEqual",
		"AssignTimestamps",
		"Combine",
		"Create",
		"Enrichment",
		"Explode",
		"ExtractWindowingInfo",
		"Filter",
		"Flatten",
		"Join",
		"LogForTesting",
		"MLTransform",
		"MapToFields",
		"Partition",
		"PyTransform",
		"RunInference",
		"Sql",
		"StripErrorMetadata",
		"ValidateWithSchema",
		"WindowInto",
	},
	CategoryIO: {
		"ReadFromAvro",
		"WriteToAvro",
		"ReadFromBigQuery",
		"WriteToBigQuery",
		"WriteToBigTable",
		"ReadFromCsv",
		"WriteToCsv",
		"ReadFromIceberg",
		"WriteToIceberg",
		"ReadFromJdbc",
		"WriteToJdbc",
		"ReadFromJson",
		"WriteToJson",
		"ReadFromKafka",
		"WriteToKafka",
		"ReadFromMySql",
		"WriteToMySql",
		"ReadFromOracle",
		"WriteToOracle",
		"ReadFromParquet",
		"WriteToParquet",
		"ReadFromPostgres",
		"WriteToPostgres",
		"ReadFromPubSub",
		"WriteToPubSub",
		"ReadFromPubSubLite",
		"WriteToPubSubLite",
		"ReadFromSpanner",
		"WriteToSpanner",
		"ReadFromSqlServer",
		"WriteToSqlServer",
		"ReadFromTFRecord",
		"WriteToTFRecord",
		"ReadFromText",
		"WriteToText",
	},
}
