package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"user": {
		"topic:view",
		"quiz:view",
		"quiz:submit",
		"progress:view-own",
		"progress:update-own",
		"assistant:ask",
	},
	"admin": {
		"*", // everything
	},
}
