package audit

import "fmt"

// Field is one tracked field of an edited record: its display name and the
// values before and after the update.
type Field struct {
	Name string
	Old  string
	New  string
}

// Diff renders a human-readable change line for every field whose value
// actually changed, in the order the fields were declared. Unchanged fields
// emit nothing. Empty values display as 'None' but still count as values
// for the equality check, so going from empty to set is reported.
func Diff(fields []Field) []string {
	var changes []string
	for _, f := range fields {
		if f.Old == f.New {
			continue
		}
		changes = append(changes, fmt.Sprintf("%s: '%s' → '%s'", f.Name, displayValue(f.Old), displayValue(f.New)))
	}
	return changes
}

func displayValue(v string) string {
	if v == "" {
		return "None"
	}
	return v
}
