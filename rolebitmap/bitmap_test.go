package rolebitmap

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		m    Bitmap
		ok   bool
	}{
		{"zero", Bitmap{}, true},
		{"single role slot 0", Role(0), true},
		{"single role slot 31", Role(31), true},
		{"admin slot 0", Admin(0), true},
		{"admin slot 31", Admin(31), true},
		{"all role bits", func() Bitmap {
			var m Bitmap
			for s := 0; s < MaxRoles; s++ {
				m = m.Or(Role(s)).Or(Admin(s))
			}
			return m
		}(), true},
		{"second bit of slot 0", Bitmap{A: 0x2}, false},
		{"third bit of slot 0", Bitmap{A: 0x4}, false},
		{"fourth bit of slot 0", Bitmap{A: 0x8}, false},
		{"high slot garbage in B", Bitmap{B: 0x6}, false},
		{"garbage in admin half", Bitmap{D: 0xE << 60}, false},
		{"valid plus garbage", Role(3).Or(Bitmap{A: 0x2000}), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate(%s) = %v, want nil", tc.m, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("Validate(%s) = nil, want ErrMalformedBitmap", tc.m)
			}
		})
	}
}

func TestRoleAdminPlacement(t *testing.T) {
	for slot := 0; slot < MaxRoles; slot++ {
		role := Role(slot)
		admin := Admin(slot)

		if role.IsZero() {
			t.Fatalf("Role(%d) is zero", slot)
		}
		if !role.Upper().IsZero() {
			t.Fatalf("Role(%d) leaked into admin half: %s", slot, role)
		}
		if !admin.Lower().IsZero() {
			t.Fatalf("Admin(%d) leaked into role half: %s", slot, admin)
		}
		if role.AdminOf() != admin {
			t.Fatalf("AdminOf(Role(%d)) = %s, want %s", slot, role.AdminOf(), admin)
		}
	}

	if r := Role(-1); !r.IsZero() {
		t.Fatalf("Role(-1) = %s, want zero", r)
	}
	if r := Role(MaxRoles); !r.IsZero() {
		t.Fatalf("Role(MaxRoles) = %s, want zero", r)
	}
}

func TestAdminOfDiscardsAdminHalf(t *testing.T) {
	m := Role(1).Or(Admin(2))
	got := m.AdminOf()
	if got != Admin(1) {
		t.Fatalf("AdminOf dropped wrong bits: got %s, want %s", got, Admin(1))
	}
}

func TestAdminClosure(t *testing.T) {
	// Closure of a direct role is its admin; closure of an admin bit is
	// itself. Mixed bitmaps union both.
	cases := []struct {
		name string
		in   Bitmap
		want Bitmap
	}{
		{"direct role", Role(4), Admin(4)},
		{"admin bit self-governs", Admin(4), Admin(4)},
		{"mixed", Role(1).Or(Admin(7)), Admin(1).Or(Admin(7))},
		{"zero", Bitmap{}, Bitmap{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.AdminClosure(); got != tc.want {
				t.Fatalf("AdminClosure(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestBitwiseHelpers(t *testing.T) {
	a := Role(0).Or(Role(5))
	b := Role(5).Or(Role(9))

	if got := a.And(b); got != Role(5) {
		t.Fatalf("And = %s, want %s", got, Role(5))
	}
	if got := a.AndNot(b); got != Role(0) {
		t.Fatalf("AndNot = %s, want %s", got, Role(0))
	}
	union := Role(0).Or(Role(5)).Or(Role(9))
	if got := a.Or(b); got != union {
		t.Fatalf("Or = %s, want %s", got, union)
	}
	if !a.Contains(Role(5)) || a.Contains(Role(9)) {
		t.Fatalf("Contains misbehaved for %s", a)
	}
}
