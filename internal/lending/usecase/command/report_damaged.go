package command

import (
	"time"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// ReportDamagedCommand represents the command to report an issued item
// as damaged on its way back.
type ReportDamagedCommand struct {
	TransactionID uint
	ItemID        uint
}

// ReportDamagedHandler handles the report damaged command
type ReportDamagedHandler struct {
	store domain.Store
	now   func() time.Time
}

// NewReportDamagedHandler creates a new report damaged handler
func NewReportDamagedHandler(store domain.Store) *ReportDamagedHandler {
	return &ReportDamagedHandler{store: store, now: time.Now}
}

// Handle is identical to a return except the item lands in Damaged. A
// damaged item can be issued again only with the explicit override on
// the issue command.
func (h *ReportDamagedHandler) Handle(cmd ReportDamagedCommand) error {
	return resolveLine(h.store, cmd.TransactionID, cmd.ItemID,
		domain.ResolutionDamaged, domain.ItemDamaged, h.now())
}
