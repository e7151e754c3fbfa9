package thermal

import "testing"

func TestPolicyNameKnownUUIDs(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{DefaultUUID, "adaptive performance"},
		{"42A441D6-AE6A-462B-A84B-4A8CE79027D3", "passive 1"},
		{"F5A35014-C209-46A4-993A-EB56DE7530A1", "power boss"},
	}
	for _, tc := range cases {
		if got := PolicyName(tc.id); got != tc.want {
			t.Errorf("PolicyName(%s) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestPolicyNameFoldsCase(t *testing.T) {
	if got := PolicyName("63be270f-1c11-48fd-a6f7-3af253ff3e2d"); got != "adaptive performance" {
		t.Errorf("expected lowercase uuid to resolve, got %q", got)
	}
}

func TestPolicyNameUnknown(t *testing.T) {
	if got := PolicyName("FFFFFFFF-0000-0000-0000-000000000000"); got != "" {
		t.Errorf("expected empty name for unknown uuid, got %q", got)
	}
	if got := PolicyName("not-a-uuid"); got != "" {
		t.Errorf("expected empty name for malformed uuid, got %q", got)
	}
}
