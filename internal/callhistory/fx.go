package callhistory

import (
	"github.com/callshield/callshield/internal/callhistory/repository"
	"github.com/callshield/callshield/internal/callhistory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("callhistory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
