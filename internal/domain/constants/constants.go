// Package constants holds shared domain constants.
package constants

const (
	// Environment names
	EnvDevelop    = "develop"
	EnvProduction = "production"

	// PubSub provider names
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
