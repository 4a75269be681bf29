package phonenumber

import (
	"github.com/callshield/callshield/internal/phonenumber/repository"
	"github.com/callshield/callshield/internal/phonenumber/service"
	"go.uber.org/fx"
)

var Module = fx.Module("phonenumber.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
