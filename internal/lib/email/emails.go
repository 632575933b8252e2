package email

import (
	"context"
	"fmt"
)

// AthleteRegisteredData fills the athlete_registered template.
type AthleteRegisteredData struct {
	AthleteName    string
	CPF            string
	Category       string
	TrainingCenter string
	RegisteredAt   string
}

// SendAthleteRegisteredEmail notifies staff about a newly registered athlete.
func (c *Client) SendAthleteRegisteredEmail(ctx context.Context, to string, data AthleteRegisteredData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("New athlete registered: %s", data.AthleteName),
		TemplateAthleteRegistered,
		data,
	)
}
