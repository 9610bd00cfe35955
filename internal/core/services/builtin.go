package services

import (
	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/connectors/github"
	"github.com/custodia-labs/sercha-connect/internal/connectors/google/calendar"
	"github.com/custodia-labs/sercha-connect/internal/connectors/google/gmail"
	"github.com/custodia-labs/sercha-connect/internal/connectors/stripe"
	"github.com/custodia-labs/sercha-connect/internal/connectors/twilio"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// RegisterBuiltinConnectors registers every connector shipped with the
// gateway. It is called once at startup before any adapter serves requests.
func RegisterBuiltinConnectors(reg driving.ConnectorRegistry, deps connectors.Deps) {
	registerGmail(reg, deps)
	registerGoogleCalendar(reg, deps)
	registerStripe(reg, deps)
	registerTwilio(reg, deps)
	registerGitHub(reg, deps)
}

func registerGmail(reg driving.ConnectorRegistry, deps connectors.Deps) {
	reg.Register(gmail.ID, gmail.NewFactory(deps), gmail.DefaultConfig())
}

func registerGoogleCalendar(reg driving.ConnectorRegistry, deps connectors.Deps) {
	reg.Register(calendar.ID, calendar.NewFactory(deps), calendar.DefaultConfig())
}

func registerStripe(reg driving.ConnectorRegistry, deps connectors.Deps) {
	reg.Register(stripe.ID, stripe.NewFactory(deps), stripe.DefaultConfig())
}

func registerTwilio(reg driving.ConnectorRegistry, deps connectors.Deps) {
	reg.Register(twilio.ID, twilio.NewFactory(deps), twilio.DefaultConfig())
}

func registerGitHub(reg driving.ConnectorRegistry, deps connectors.Deps) {
	reg.Register(github.ID, github.NewFactory(deps), github.DefaultConfig())
}
