package application

import (
	"github.com/smart-practice/backend/internal/application/repository"
	"github.com/smart-practice/backend/internal/application/service"
	"go.uber.org/fx"
)

var Module = fx.Module("application.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
