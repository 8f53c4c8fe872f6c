package skill

import (
	"github.com/smart-practice/backend/internal/skill/repository"
	"github.com/smart-practice/backend/internal/skill/service"
	"go.uber.org/fx"
)

var Module = fx.Module("skill.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
