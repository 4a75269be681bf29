package resolution

import (
	"github.com/callshield/callshield/internal/resolution/events"
	"github.com/callshield/callshield/internal/resolution/service"
	"go.uber.org/fx"
)

var Module = fx.Module("resolution.service",
	fx.Provide(events.NewHub),
	fx.Provide(service.New),
)
