package tree

import (
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"

	"github.com/resgraph/resquery-go/catalog"
	"github.com/resgraph/resquery-go/dates"
)

// validateValue checks that a literal value parses as its declared data type.
// Validation happens before any SQL is built so a partially-built query is
// never returned as a valid-looking fragment.
func validateValue(value string, dt catalog.DataType) bool {
	switch dt {
	case catalog.String:
		return true
	case catalog.DateTime:
		return dates.IsValid(value)
	case catalog.Int16:
		_, err := strconv.ParseInt(value, 10, 16)
		return err == nil
	case catalog.Int32:
		_, err := strconv.ParseInt(value, 10, 32)
		return err == nil
	case catalog.Int64:
		_, err := strconv.ParseInt(value, 10, 64)
		return err == nil
	case catalog.Byte:
		_, err := strconv.ParseUint(value, 10, 8)
		return err == nil
	case catalog.Decimal, catalog.Double, catalog.Single:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	case catalog.Boolean:
		_, err := strconv.ParseBool(value)
		return err == nil
	case catalog.Guid:
		_, err := uuid.Parse(value)
		return err == nil
	case catalog.Binary:
		_, err := hex.DecodeString(value)
		return err == nil
	default:
		return false
	}
}

// validateExpression enforces the expression invariants shared by comparison
// and contains nodes.
func validateExpression(e *Expression) error {
	if e.Token == "" && e.TokenType != ImplicitPropertiesToken {
		switch e.TokenType {
		case SpecialToken:
			return searchErrorf("a special token is required")
		case PropertyToken:
			return searchErrorf("a property token is required")
		default:
			return searchErrorf("unknown token type %q", e.TokenType)
		}
	}
	if e.TokenType != SpecialToken && e.TokenType != PropertyToken && e.TokenType != ImplicitPropertiesToken {
		return searchErrorf("unknown token type %q", e.TokenType)
	}
	if e.ResourceTypeFullName == "" {
		return searchErrorf("a resource type is required")
	}
	if e.TokenType == ImplicitPropertiesToken && e.DataType != catalog.String {
		return searchErrorf("searching across all properties requires a string value, got type %s", e.DataType)
	}
	if !validateValue(e.Value, e.DataType) {
		return searchErrorf("invalid value %q for type %s", e.Value, e.DataType)
	}
	return nil
}

// literal renders a validated value as a SQL literal for its type.
// DateTime values never reach here; comparisons rewrite them over day
// boundaries instead.
func literal(value string, dt catalog.DataType) string {
	switch dt {
	case catalog.Boolean:
		b, _ := strconv.ParseBool(value)
		if b {
			return "TRUE"
		}
		return "FALSE"
	case catalog.String, catalog.Guid, catalog.DateTime, catalog.Binary:
		return QuoteLiteral(value)
	default:
		// Numeric types are emitted bare; validateValue guarantees the
		// text is a plain number.
		return value
	}
}
