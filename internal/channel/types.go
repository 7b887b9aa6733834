package channel

import "github.com/HaokunYang123/routine-craft-bot-sub002/internal/model"

// Family is the role-derived namespace a channel belongs to.
type Family = model.Role

const (
	FamilyCoach   = model.RoleCoach
	FamilyStudent = model.RoleStudent
)

// ResourceType identifies the kind of update stream.
type ResourceType string

const (
	ResourceTaskUpdates ResourceType = "task-updates"
	ResourceCheckIns    ResourceType = "check-ins"
	ResourceAssignments ResourceType = "assignments"
)

// Name is a derived push channel identifier. Names are recomputed per session
// and never persisted.
type Name string

func (n Name) String() string { return string(n) }

// Rule binds one (family, resource type) pair to its fixed channel prefix.
type Rule struct {
	Family   Family
	Resource ResourceType
	Prefix   string
}

// Descriptor is the decoded form of a Name.
type Descriptor struct {
	Family   Family
	Resource ResourceType
	Owner    string
}
