package enums

import "testing"

func TestParsePhotoStatus(t *testing.T) {
	status, err := ParsePhotoStatus("ready_to_print")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != PhotoStatusReadyToPrint {
		t.Fatalf("unexpected status %s", status)
	}
	if _, err := ParsePhotoStatus("archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestSyncStatusValidity(t *testing.T) {
	for _, s := range []SyncStatus{SyncStatusPending, SyncStatusSynced, SyncStatusFailed} {
		if !s.IsValid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if SyncStatus("done").IsValid() {
		t.Fatal("expected unknown sync status to be invalid")
	}
}

func TestParseInvoiceMethod(t *testing.T) {
	method, err := ParseInvoiceMethod("both")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != InvoiceMethodBoth {
		t.Fatalf("unexpected method %s", method)
	}
	if _, err := ParseInvoiceMethod("email"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestParseStaffRole(t *testing.T) {
	role, err := ParseStaffRole("branch_manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != StaffRoleBranchManager {
		t.Fatalf("unexpected role %s", role)
	}
	if _, err := ParseStaffRole("owner"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestParseOrderSendType(t *testing.T) {
	if _, err := ParseOrderSendType("print_and_send"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderSendType("mail"); err == nil {
		t.Fatal("expected error for unknown send type")
	}
}
