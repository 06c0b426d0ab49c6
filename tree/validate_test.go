package tree

import (
	"testing"

	"github.com/resgraph/resquery-go/catalog"
)

func TestValidateValue(t *testing.T) {
	tests := []struct {
		value string
		dt    catalog.DataType
		want  bool
	}{
		{"anything at all", catalog.String, true},
		{"", catalog.String, true},

		{"2024-06-12", catalog.DateTime, true},
		{"last month", catalog.DateTime, true},
		{"not a date", catalog.DateTime, false},

		{"32767", catalog.Int16, true},
		{"32768", catalog.Int16, false},
		{"2147483647", catalog.Int32, true},
		{"2147483648", catalog.Int32, false},
		{"9223372036854775807", catalog.Int64, true},
		{"1.5", catalog.Int64, false},

		{"255", catalog.Byte, true},
		{"256", catalog.Byte, false},
		{"-1", catalog.Byte, false},

		{"3.14", catalog.Double, true},
		{"3.14", catalog.Single, true},
		{"19.99", catalog.Decimal, true},
		{"abc", catalog.Double, false},

		{"true", catalog.Boolean, true},
		{"0", catalog.Boolean, true},
		{"yes", catalog.Boolean, false},

		{"6f1c6f9e-66a2-4a3b-9a3e-1f2d3c4b5a69", catalog.Guid, true},
		{"not-a-guid", catalog.Guid, false},

		{"deadbeef", catalog.Binary, true},
		{"xyz", catalog.Binary, false},

		{"x", catalog.DataType("UNKNOWN"), false},
	}

	for _, tt := range tests {
		if got := validateValue(tt.value, tt.dt); got != tt.want {
			t.Errorf("validateValue(%q, %s) = %v, want %v", tt.value, tt.dt, got, tt.want)
		}
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		value string
		dt    catalog.DataType
		want  string
	}{
		{"abc", catalog.String, "'abc'"},
		{"O'Brien", catalog.String, "'O''Brien'"},
		{"42", catalog.Int32, "42"},
		{"3.14", catalog.Double, "3.14"},
		{"true", catalog.Boolean, "TRUE"},
		{"0", catalog.Boolean, "FALSE"},
		{"6f1c6f9e-66a2-4a3b-9a3e-1f2d3c4b5a69", catalog.Guid, "'6f1c6f9e-66a2-4a3b-9a3e-1f2d3c4b5a69'"},
		{"deadbeef", catalog.Binary, "'deadbeef'"},
	}

	for _, tt := range tests {
		if got := literal(tt.value, tt.dt); got != tt.want {
			t.Errorf("literal(%q, %s) = %q, want %q", tt.value, tt.dt, got, tt.want)
		}
	}
}
