package settings

import (
	"github.com/callshield/callshield/internal/settings/repository"
	"github.com/callshield/callshield/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
