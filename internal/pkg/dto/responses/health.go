package responses

type HealthCheck struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
