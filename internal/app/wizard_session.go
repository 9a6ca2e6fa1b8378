package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/checkin/internal/core/catalog"
	"github.com/example/checkin/internal/core/wizard"
	"github.com/example/checkin/internal/ctxutil"
	"github.com/example/checkin/internal/ports/primary"
)

// WizardSession is one run of the check-in wizard with the catalog
// snapshot it was started against.
type WizardSession struct {
	ID       string
	Catalogs catalog.Catalogs
	Wizard   *wizard.Controller
}

// StartSession loads the catalogs and starts a wizard at basic-info. The
// returned context carries the session ID for logging.
func StartSession(ctx context.Context, loader primary.CatalogLoader, now func() time.Time) (context.Context, *WizardSession) {
	id := uuid.NewString()
	ctx = ctxutil.WithSessionID(ctx, id)

	catalogs := loader.Load(ctx)
	return ctx, &WizardSession{
		ID:       id,
		Catalogs: catalogs,
		Wizard:   wizard.New(now, catalogs.Counts()),
	}
}
