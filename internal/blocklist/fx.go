package blocklist

import (
	"github.com/callshield/callshield/internal/blocklist/repository"
	"github.com/callshield/callshield/internal/blocklist/service"
	"go.uber.org/fx"
)

var Module = fx.Module("blocklist.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
