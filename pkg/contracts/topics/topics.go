package topics

const (
	// Integração
	IntegrationModeChanges = "integration_mode_changes"
)
