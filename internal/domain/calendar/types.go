package calendar

// ===============================
// Agent Roles
// ===============================

type Role string

const (
	RoleSales   Role = "sales"
	RoleService Role = "service"

	// RoleAny matches every agent; used by list filters.
	RoleAny Role = ""
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSales, RoleService:
		return Role(s), true
	}
	return RoleAny, false
}

// ===============================
// Slots
// ===============================

const (
	// ScanGranularityMin is the step of the forward availability scan.
	// Changing it changes which alternative gets proposed, so it is a
	// contract, not a tuning knob.
	ScanGranularityMin = 30

	DefaultDurationMin = 60
)

// Slot is a candidate interval. It is never persisted; it either gets
// confirmed into an Appointment or discarded.
type Slot struct {
	AgentName string `json:"agent_name"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`

	// Exact is true when the slot is the requested time, false when it
	// is a proposed alternative.
	Exact bool `json:"exact"`
}
