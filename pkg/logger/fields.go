package logger

// Unified log field names, kept consistent so logs stay queryable
const (
	// FieldTraceID trace id field
	FieldTraceID = "traceId"

	// FieldUID owner user id field
	FieldUID = "uid"

	// FieldEntryID entry id field
	FieldEntryID = "entryId"

	// FieldTagID tag id field
	FieldTagID = "tagId"

	// FieldTagTitle tag title field
	FieldTagTitle = "tagTitle"

	// FieldDuration elapsed time field
	FieldDuration = "duration"

	// FieldMethod method name field
	FieldMethod = "method"

	// FieldError error message field
	FieldError = "error"
)
