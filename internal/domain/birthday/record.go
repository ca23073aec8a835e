package birthday

// Record is one stored birthday: who, and when it recurs.
// At most one record exists per subject; a set overwrites.
type Record struct {
	SubjectID string
	Date      Date
}
