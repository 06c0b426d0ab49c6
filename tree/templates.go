package tree

import "fmt"

// Set combinators used to join child fragments.
const (
	opIntersect = "INTERSECT"
	opExcept    = "EXCEPT"
)

// joinQueries combines two query fragments with a set operator. An empty
// fragment is an absorbing identity: an operator with one missing operand
// degrades to the other operand, not to "match nothing".
func joinQueries(left, op, right string) string {
	switch {
	case left == "" && right == "":
		return ""
	case left == "":
		return right
	case right == "":
		return left
	}
	return "(" + left + ") " + op + " (" + right + ")"
}

// selectResources is the base projection template. The projection argument is
// either empty or a leading ", <clause>" adding a sort column or a similarity
// scalar to the projection.
func selectResources(projection, where string) string {
	return fmt.Sprintf(`SELECT "ResourceId"%s FROM "Resource" WHERE %s`, projection, where)
}

// selectRelated is the relationship-join template. Forward traversal selects
// subjects whose objects satisfy the right fragment; reverse traversal swaps
// the two relationship endpoints.
func selectRelated(projection, predicateFilter, right, typeFilter string, reverse bool) string {
	near, far := `"SubjectResourceId"`, `"ObjectResourceId"`
	if reverse {
		near, far = far, near
	}
	return fmt.Sprintf(
		`SELECT "ResourceId"%s FROM "Resource" WHERE "ResourceId" IN (SELECT %s FROM "Relationship" WHERE (%s) AND %s IN (%s)) AND %s`,
		projection, near, predicateFilter, far, right, typeFilter)
}
