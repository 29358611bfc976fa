package modfile

import "errors"

// Extraction failure reasons. These are terminal for the file being
// parsed: the caller skips the file and continues the walk.
const (
	ReasonNoTitle      = "No mod title found"
	ReasonNoCategories = "No categories found"
	ReasonNoPakfile    = "No pakfile found"
	ReasonEmptyFile    = "Empty file found"
)

// NotAModFileError signals that a file could not be extracted as a mod:
// it is missing a title, required categories, a required pakfile, or has
// no content at all.
type NotAModFileError struct {
	Filename string
	Reason   string
}

func (e *NotAModFileError) Error() string {
	if e.Filename == "" {
		return e.Reason
	}
	return e.Reason + " in " + e.Filename
}

// IsNotAModFile reports whether err is a NotAModFileError.
func IsNotAModFile(err error) bool {
	var nmf *NotAModFileError
	return errors.As(err, &nmf)
}
