package channel

import "regexp"

const (
	// MaxOwnerLength bounds owner identities; UUIDs and short ids both fit.
	MaxOwnerLength = 64
)

// ownerPattern keeps names free of ':' and the Redis glob metacharacters.
var ownerPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var defaultRules = []Rule{
	{Family: FamilyCoach, Resource: ResourceTaskUpdates, Prefix: "coach-tasks-"},
	{Family: FamilyCoach, Resource: ResourceCheckIns, Prefix: "coach-checkins-"},
	{Family: FamilyStudent, Resource: ResourceAssignments, Prefix: "student-assignments-"},
	{Family: FamilyStudent, Resource: ResourceTaskUpdates, Prefix: "student-tasks-"},
}
