package instance

import "github.com/angelmondragon/storefront-backend/pkg/env"

// GetID returns the process instance identifier, falling back to the dyno
// name and then to "local".
func GetID() string {
	return env.Get("STOREFRONT_INSTANCE_ID", env.Get("DYNO", "local"))
}
