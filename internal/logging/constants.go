package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldTable      = "table"
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldUser       = "user"
	FieldCategory   = "category"
	FieldScore      = "score"
	FieldStatus     = "status"
	FieldGrade      = "grade"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldDropped    = "dropped"
	FieldDuration   = "duration_ms"
	FieldFormat     = "format"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldWorkers    = "workers"
)
