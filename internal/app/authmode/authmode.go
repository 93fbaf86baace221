package authmode

import (
	"fmt"

	"telco_dash/internal/app/localauth"
	"telco_dash/internal/app/service"
	"telco_dash/internal/domain"
	"telco_dash/internal/domain/repository"
	"telco_dash/internal/platform/config"
	"telco_dash/internal/platform/filestore"
	"telco_dash/internal/platform/kvstore"
)

// Select builds the Authenticator for the configured mode. Mode is chosen
// exactly once here; no shared code branches on it afterwards.
func Select(cfg *config.Config) (domain.Authenticator, error) {
	switch cfg.AuthMode {
	case config.ModeServer:
		store := filestore.New(cfg.DataFile)
		return service.NewAuthService(repository.NewFileUserRepository(store)), nil
	case config.ModeLocal:
		durable, err := kvstore.NewDirStorage(cfg.LocalDataDir)
		if err != nil {
			return nil, err
		}
		return localauth.NewService(durable, kvstore.NewMemStorage()), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}
