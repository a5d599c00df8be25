// Package constants holds shared literal values referenced across layers.
package constants

// Pub/Sub provider names accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Deployment environment names.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)
