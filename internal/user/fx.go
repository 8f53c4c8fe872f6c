package user

import (
	"github.com/smart-practice/backend/internal/user/repository"
	"github.com/smart-practice/backend/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
