package clean

import (
	"fmt"
	"strings"
)

// Role names the semantic meaning of a source column.
type Role string

const (
	RoleAge    Role = "age"
	RoleSex    Role = "sex"
	RoleBMI    Role = "bmi"
	RoleHeight Role = "height"
	RoleWeight Role = "weight"
)

// allRoles fixes the order roles are reported in diagnostics.
var allRoles = []Role{RoleAge, RoleSex, RoleBMI, RoleHeight, RoleWeight}

// roleKeywords drives detection: the first column whose lowercased name
// contains one of a role's keywords claims that role, and a claimed role is
// never reassigned.
var roleKeywords = []struct {
	role     Role
	keywords []string
}{
	{RoleAge, []string{"age"}},
	{RoleSex, []string{"sex", "gender"}},
	{RoleBMI, []string{"bmi"}},
	{RoleHeight, []string{"height"}},
	{RoleWeight, []string{"weight"}},
}

// RoleMap maps detected roles to the source column name filling them. Absent
// roles are simply missing keys; absence of the optional roles is not an error.
type RoleMap map[Role]string

// String renders the map in fixed role order for diagnostics.
func (m RoleMap) String() string {
	parts := make([]string, 0, len(allRoles))
	for _, r := range allRoles {
		name, ok := m[r]
		if !ok {
			name = "?"
		}
		parts = append(parts, fmt.Sprintf("%s=%s", r, name))
	}
	return strings.Join(parts, ", ")
}

// DetectColumns scans header names once, left to right, assigning roles by
// case-insensitive keyword containment.
func DetectColumns(header []string) RoleMap {
	m := RoleMap{}
	for _, name := range header {
		lower := strings.ToLower(strings.TrimSpace(name))
		for _, rk := range roleKeywords {
			if _, taken := m[rk.role]; taken {
				continue
			}
			for _, kw := range rk.keywords {
				if strings.Contains(lower, kw) {
					m[rk.role] = name
					break
				}
			}
		}
	}
	return m
}

// SchemaError indicates the mandatory age and sex roles could not both be
// located in the source header. The partial role map travels with the error
// so the failure is diagnosable from the message alone.
type SchemaError struct {
	Roles RoleMap
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema detection failed: age and sex columns are required (detected: %s)", e.Roles)
}
