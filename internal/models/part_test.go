package models

import "testing"

func TestParsePartKind(t *testing.T) {
	for _, s := range []string{"MECHANICAL", "ELECTRICAL", "BODYWORK", "CONSUMABLE"} {
		if _, err := ParsePartKind(s); err != nil {
			t.Errorf("expected %q to parse, got %v", s, err)
		}
	}
	if _, err := ParsePartKind("TIRE"); err == nil {
		t.Error("expected unknown kind to be rejected")
	}
}

func TestPartLowStock(t *testing.T) {
	cases := []struct {
		name    string
		stock   int
		minimum int
		low     bool
	}{
		{"above threshold", 10, 3, false},
		{"at threshold", 3, 3, true},
		{"below threshold", 1, 3, true},
		{"zero stock", 0, 3, true},
		{"zero threshold", 1, 0, false},
	}
	for _, tc := range cases {
		p := Part{QuantityInStock: tc.stock, MinimumStock: tc.minimum}
		if got := p.LowStock(); got != tc.low {
			t.Errorf("%s: expected LowStock=%v, got %v", tc.name, tc.low, got)
		}
	}
}

func TestNewPartUsage(t *testing.T) {
	u, err := NewPartUsage("svc1", "part1", 3, 9.99)
	if err != nil {
		t.Fatalf("NewPartUsage failed: %v", err)
	}
	if u.TotalPrice != 29.97 {
		t.Errorf("expected total 29.97, got %v", u.TotalPrice)
	}
	if u.ServiceID != "svc1" || u.PartID != "part1" {
		t.Errorf("unexpected references: %q %q", u.ServiceID, u.PartID)
	}
}

func TestNewPartUsage_Negative(t *testing.T) {
	if _, err := NewPartUsage("svc1", "part1", -1, 5.0); err != ErrNegativeAmount {
		t.Errorf("expected ErrNegativeAmount for negative quantity, got %v", err)
	}
	if _, err := NewPartUsage("svc1", "part1", 1, -0.01); err != ErrNegativeAmount {
		t.Errorf("expected ErrNegativeAmount for negative price, got %v", err)
	}
}

func TestPartUsageSettersKeepTotalInSync(t *testing.T) {
	u, err := NewPartUsage("svc1", "part1", 2, 5.00)
	if err != nil {
		t.Fatalf("NewPartUsage failed: %v", err)
	}
	if u.TotalPrice != 10.00 {
		t.Fatalf("expected total 10.00, got %v", u.TotalPrice)
	}

	if err := u.SetQuantity(4); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	if u.TotalPrice != 20.00 {
		t.Errorf("after quantity change expected total 20.00, got %v", u.TotalPrice)
	}

	if err := u.SetUnitPrice(2.50); err != nil {
		t.Fatalf("SetUnitPrice failed: %v", err)
	}
	if u.TotalPrice != 10.00 {
		t.Errorf("after price change expected total 10.00, got %v", u.TotalPrice)
	}

	// Rejected updates must leave the line untouched.
	if err := u.SetQuantity(-1); err != ErrNegativeAmount {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
	if u.Quantity != 4 || u.TotalPrice != 10.00 {
		t.Errorf("rejected update mutated the line: qty=%d total=%v", u.Quantity, u.TotalPrice)
	}

	// Zero quantity is allowed and zeroes the total.
	if err := u.SetQuantity(0); err != nil {
		t.Fatalf("SetQuantity(0) failed: %v", err)
	}
	if u.TotalPrice != 0 {
		t.Errorf("expected zero total, got %v", u.TotalPrice)
	}
}
