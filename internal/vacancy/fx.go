package vacancy

import (
	"github.com/smart-practice/backend/internal/vacancy/repository"
	"github.com/smart-practice/backend/internal/vacancy/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vacancy.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
