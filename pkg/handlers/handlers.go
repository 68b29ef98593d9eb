package handlers

import (
	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/handlers/dashboard"
	"github.com/chris/money-movements/pkg/handlers/exports"
	"github.com/chris/money-movements/pkg/handlers/movements"
	"github.com/chris/money-movements/pkg/handlers/preferences"
	"github.com/chris/money-movements/pkg/handlers/profile"
)

// ApiHandler implements the generated server interface.
// It is a composite of all the resource-specific handlers.
type ApiHandler struct {
	*movements.MovementsHandler
	*dashboard.DashboardHandler
	*exports.ExportsHandler
	*profile.ProfileHandler
	*preferences.PreferencesHandler
}

// NewApiHandler creates a new ApiHandler from the resource handlers.
func NewApiHandler(
	movementsHandler *movements.MovementsHandler,
	dashboardHandler *dashboard.DashboardHandler,
	exportsHandler *exports.ExportsHandler,
	profileHandler *profile.ProfileHandler,
	preferencesHandler *preferences.PreferencesHandler,
) *ApiHandler {
	return &ApiHandler{
		MovementsHandler:   movementsHandler,
		DashboardHandler:   dashboardHandler,
		ExportsHandler:     exportsHandler,
		ProfileHandler:     profileHandler,
		PreferencesHandler: preferencesHandler,
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
