package thermal

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultUUID is the policy selected when no identifier is given: the
// int3400 adaptive performance policy.
const DefaultUUID = "63BE270F-1C11-48FD-A6F7-3AF253FF3E2D"

// policyNames maps the policy UUIDs defined by the int3400 ACPI thermal
// driver to the driver's names for them. The table only annotates
// listings; whether a UUID can be selected is decided by the kernel's
// available_uuids enumeration alone.
var policyNames = map[string]string{
	"42A441D6-AE6A-462B-A84B-4A8CE79027D3": "passive 1",
	"3A95C389-E4B8-4629-A526-C52C88626BAE": "active",
	"97C68AE7-15FA-499C-B8C9-5DA81D606E0A": "critical",
	"63BE270F-1C11-48FD-A6F7-3AF253FF3E2D": "adaptive performance",
	"5349962F-71E6-431D-9AE8-0A635B710AEE": "emergency call mode",
	"9E04115A-AE87-4D1C-9500-0F3E340BFE75": "passive 2",
	"F5A35014-C209-46A4-993A-EB56DE7530A1": "power boss",
	"6ED722A7-9240-48A5-B479-31EEF723D7CF": "virtual sensor",
	"16CAF1B7-DD38-40ED-B1C1-1B8A1913D531": "cooling mode",
	"BE84BABF-C4D4-403D-B495-3128FD44DAC1": "hardware duty cycling",
}

// PolicyName returns the int3400 driver's name for a policy UUID, or ""
// when the UUID is not a known policy. The lookup canonicalizes through
// uuid.Parse so case differences in sysfs output don't defeat it.
func PolicyName(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return ""
	}
	return policyNames[strings.ToUpper(u.String())]
}
