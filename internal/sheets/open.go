package sheets

import (
	"context"
	"fmt"

	"github.com/Sguobi-git/Orders-App/internal/config"
	logger "github.com/sirupsen/logrus"
)

// Open builds the client selected by SHEETS_BACKEND. The memory backend
// starts empty.
func Open(ctx context.Context, cfg config.SheetsConfig) (Client, error) {
	switch cfg.Backend {
	case "google":
		c, err := NewGoogleClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("google sheets client: %w", err)
		}
		logger.Infof("📗 Sheets backend: Google (credentials %s)", cfg.CredentialsFile)
		return c, nil
	case "memory":
		logger.Info("🧪 Sheets backend: in-memory")
		return NewMemoryClient(), nil
	default:
		return nil, fmt.Errorf("unknown sheets backend %q", cfg.Backend)
	}
}
