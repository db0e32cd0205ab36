//go:build wireinject
// +build wireinject

package lending

import (
	"github.com/google/wire"

	httpDelivery "github.com/aidosbek/labtrack/internal/lending/delivery/http"
	"github.com/aidosbek/labtrack/internal/lending/domain"
	"github.com/aidosbek/labtrack/internal/lending/usecase/command"
	"github.com/aidosbek/labtrack/internal/lending/usecase/query"
)

// Command Handlers Providers
func ProvideIssueItemsHandler(store domain.Store) *command.IssueItemsHandler {
	return command.NewIssueItemsHandler(store)
}

func ProvideReturnItemHandler(store domain.Store) *command.ReturnItemHandler {
	return command.NewReturnItemHandler(store)
}

func ProvideReportDamagedHandler(store domain.Store) *command.ReportDamagedHandler {
	return command.NewReportDamagedHandler(store)
}

func ProvideBulkImportHandler(store domain.Store) *command.BulkImportHandler {
	return command.NewBulkImportHandler(store)
}

func ProvideCreateStudentHandler(store domain.Store) *command.CreateStudentHandler {
	return command.NewCreateStudentHandler(store)
}

func ProvideDeleteStudentHandler(store domain.Store) *command.DeleteStudentHandler {
	return command.NewDeleteStudentHandler(store)
}

func ProvideCreateInventoryHandler(store domain.Store) *command.CreateInventoryHandler {
	return command.NewCreateInventoryHandler(store)
}

// Query Handlers Providers
func ProvideListInventoryHandler(store domain.Store) *query.ListInventoryHandler {
	return query.NewListInventoryHandler(store)
}

func ProvideInventorySchemaHandler() *query.InventorySchemaHandler {
	return query.NewInventorySchemaHandler()
}

func ProvideSearchItemsHandler(store domain.Store) *query.SearchItemsHandler {
	return query.NewSearchItemsHandler(store)
}

func ProvideCurrentHolderHandler(store domain.Store) *query.CurrentHolderHandler {
	return query.NewCurrentHolderHandler(store)
}

func ProvideListStudentsHandler(store domain.Store) *query.ListStudentsHandler {
	return query.NewListStudentsHandler(store)
}

func ProvideSearchStudentsHandler(store domain.Store) *query.SearchStudentsHandler {
	return query.NewSearchStudentsHandler(store)
}

func ProvideActiveLoansHandler(store domain.Store) *query.ActiveLoansHandler {
	return query.NewActiveLoansHandler(store)
}

func ProvideListStaffHandler(store domain.Store) *query.ListStaffHandler {
	return query.NewListStaffHandler(store)
}

func ProvideRecentActivityHandler(store domain.Store) *query.RecentActivityHandler {
	return query.NewRecentActivityHandler(store)
}

func ProvideOverdueItemsHandler(store domain.Store) *query.OverdueItemsHandler {
	return query.NewOverdueItemsHandler(store)
}

func ProvideStatsHandler(store domain.Store) *query.StatsHandler {
	return query.NewStatsHandler(store)
}

// Wire sets
var CommandHandlerSet = wire.NewSet(
	ProvideIssueItemsHandler,
	ProvideReturnItemHandler,
	ProvideReportDamagedHandler,
	ProvideBulkImportHandler,
	ProvideCreateStudentHandler,
	ProvideDeleteStudentHandler,
	ProvideCreateInventoryHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListInventoryHandler,
	ProvideInventorySchemaHandler,
	ProvideSearchItemsHandler,
	ProvideCurrentHolderHandler,
	ProvideListStudentsHandler,
	ProvideSearchStudentsHandler,
	ProvideActiveLoansHandler,
	ProvideListStaffHandler,
	ProvideRecentActivityHandler,
	ProvideOverdueItemsHandler,
	ProvideStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the HTTP handler with all
// dependencies. The store backend and event publisher are decided by
// the caller; events may be nil.
func InitializeHTTPHandler(store domain.Store, events httpDelivery.EventPublisher) (*httpDelivery.LendingHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpDelivery.NewLendingHandlerWithDI,
	)
	return nil, nil
}
