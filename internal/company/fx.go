package company

import (
	"github.com/smart-practice/backend/internal/company/repository"
	"github.com/smart-practice/backend/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
