package email

// PreviewData holds sample data for rendering every template locally.
var PreviewData = map[Template]any{
	TemplateAthleteRegistered: AthleteRegisteredData{
		AthleteName:    "Ana Souza",
		CPF:            "12345678900",
		Category:       "Scale",
		TrainingCenter: "CT King",
		RegisteredAt:   "2024-05-01T12:00:00Z",
	},
}
