package sqlxrepos

import (
	"strings"

	"github.com/studyroom/backend/core"
)

// orderBy renders an ORDER BY clause. Fields must be in allowed; the others are dropped.
func orderBy(orderings []core.DBOrdering, allowed ...string) string {
	clauses := make([]string, 0, len(orderings))
	for _, ord := range orderings {
		if core.ValidateOrderings([]core.DBOrdering{ord}, allowed...) != nil {
			continue
		}
		clauses = append(clauses, ord.String())
	}
	if len(clauses) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(clauses, ", ")
}
