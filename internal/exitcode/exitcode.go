package exitcode

const (
	Success         = 0
	UsageError      = 1
	InputError      = 2 // missing input file or schema mismatch
	ValidationError = 3 // a row value could not be coerced (strict mode)
	DBConnError     = 4
	WriteError      = 5
	IntegrityError  = 6 // fact row referencing a missing dimension value
)
