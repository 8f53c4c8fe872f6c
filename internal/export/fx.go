package export

import (
	"github.com/smart-practice/backend/internal/export/repository"
	"github.com/smart-practice/backend/internal/export/service"
	"go.uber.org/fx"
)

var Module = fx.Module("export.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
