package domain

import "testing"

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"customer", "agent", "admin"} {
		if _, ok := ParseRole(valid); !ok {
			t.Errorf("ParseRole(%q) rejected a valid role", valid)
		}
	}
	for _, invalid := range []string{"", "ADMIN", "superuser", "Customer"} {
		if role, ok := ParseRole(invalid); ok {
			t.Errorf("ParseRole(%q) accepted invalid input as %q", invalid, role)
		}
	}
}

func TestParseTicketStatus(t *testing.T) {
	for _, valid := range []string{"open", "in_progress", "resolved", "closed"} {
		if _, ok := ParseTicketStatus(valid); !ok {
			t.Errorf("ParseTicketStatus(%q) rejected a valid status", valid)
		}
	}
	for _, invalid := range []string{"", "OPEN", "pending", "done"} {
		if _, ok := ParseTicketStatus(invalid); ok {
			t.Errorf("ParseTicketStatus(%q) accepted invalid input", invalid)
		}
	}
}

func TestParseTicketPriority(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high", "urgent"} {
		if _, ok := ParseTicketPriority(valid); !ok {
			t.Errorf("ParseTicketPriority(%q) rejected a valid priority", valid)
		}
	}
	if _, ok := ParseTicketPriority("critical"); ok {
		t.Error("ParseTicketPriority accepted a value outside the closed set")
	}
}

func TestRoleIsStaff(t *testing.T) {
	if RoleCustomer.IsStaff() {
		t.Error("customer must not be staff")
	}
	if !RoleAgent.IsStaff() || !RoleAdmin.IsStaff() {
		t.Error("agent and admin must be staff")
	}
}
