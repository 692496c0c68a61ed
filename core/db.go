package core

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ValidateOrderings reports the first ordering whose field is not in allowed.
func ValidateOrderings(orderings []DBOrdering, allowed ...string) error {
	for _, ord := range orderings {
		ok := false
		for _, fld := range allowed {
			if ord.Field == fld {
				ok = true
				break
			}
		}
		if !ok {
			return NewValidationError(nil, FieldError{Field: "ordering", Error: "invalid ordering field: " + ord.Field})
		}
	}
	return nil
}
