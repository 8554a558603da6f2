package cli

import (
	agendaCommands "github.com/felixgeelhaar/studora/internal/agenda/application/commands"
	agendaQueries "github.com/felixgeelhaar/studora/internal/agenda/application/queries"
	identitySettings "github.com/felixgeelhaar/studora/internal/identity/application/settings"
	insightsQueries "github.com/felixgeelhaar/studora/internal/insights/application/queries"
	planCommands "github.com/felixgeelhaar/studora/internal/planning/application/commands"
	planQueries "github.com/felixgeelhaar/studora/internal/planning/application/queries"
	timetableCommands "github.com/felixgeelhaar/studora/internal/timetable/application/commands"
	timetableQueries "github.com/felixgeelhaar/studora/internal/timetable/application/queries"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Item Command Handlers
	CreateItemHandler   *agendaCommands.CreateItemHandler
	UpdateItemHandler   *agendaCommands.UpdateItemHandler
	CompleteItemHandler *agendaCommands.CompleteItemHandler
	DeleteItemHandler   *agendaCommands.DeleteItemHandler

	// Item Query Handlers
	GetItemHandler   *agendaQueries.GetItemHandler
	ListItemsHandler *agendaQueries.ListItemsHandler

	// Plan Command Handlers
	GeneratePlanHandler *planCommands.GeneratePlanHandler
	ScheduleDayHandler  *planCommands.ScheduleDayHandler

	// Plan Query Handlers
	ListSessionsHandler *planQueries.ListSessionsHandler
	FreeTimeHandler     *planQueries.FreeTimeHandler

	// Timetable Command Handlers
	AddEntryHandler         *timetableCommands.AddEntryHandler
	UpdateEntryHandler      *timetableCommands.UpdateEntryHandler
	DeleteEntryHandler      *timetableCommands.DeleteEntryHandler
	RecordAttendanceHandler *timetableCommands.RecordAttendanceHandler
	DeleteAttendanceHandler *timetableCommands.DeleteAttendanceHandler

	// Timetable Query Handlers
	ListEntriesHandler     *timetableQueries.ListEntriesHandler
	DayScheduleHandler     *timetableQueries.DayScheduleHandler
	ListAttendanceHandler  *timetableQueries.ListAttendanceHandler
	AttendanceStatsHandler *timetableQueries.AttendanceStatsHandler

	// Insights Query Handlers
	DayWorkloadHandler     *insightsQueries.DayWorkloadHandler
	ProcrastinationHandler *insightsQueries.ProcrastinationHandler
	BurnoutHandler         *insightsQueries.BurnoutHandler
	SummaryHandler         *insightsQueries.SummaryHandler

	// Settings
	SettingsService *identitySettings.Service

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createItemHandler *agendaCommands.CreateItemHandler,
	updateItemHandler *agendaCommands.UpdateItemHandler,
	completeItemHandler *agendaCommands.CompleteItemHandler,
	deleteItemHandler *agendaCommands.DeleteItemHandler,
	getItemHandler *agendaQueries.GetItemHandler,
	listItemsHandler *agendaQueries.ListItemsHandler,
	generatePlanHandler *planCommands.GeneratePlanHandler,
	scheduleDayHandler *planCommands.ScheduleDayHandler,
	listSessionsHandler *planQueries.ListSessionsHandler,
	freeTimeHandler *planQueries.FreeTimeHandler,
	addEntryHandler *timetableCommands.AddEntryHandler,
	updateEntryHandler *timetableCommands.UpdateEntryHandler,
	deleteEntryHandler *timetableCommands.DeleteEntryHandler,
	recordAttendanceHandler *timetableCommands.RecordAttendanceHandler,
	deleteAttendanceHandler *timetableCommands.DeleteAttendanceHandler,
	listEntriesHandler *timetableQueries.ListEntriesHandler,
	dayScheduleHandler *timetableQueries.DayScheduleHandler,
	listAttendanceHandler *timetableQueries.ListAttendanceHandler,
	attendanceStatsHandler *timetableQueries.AttendanceStatsHandler,
	dayWorkloadHandler *insightsQueries.DayWorkloadHandler,
	procrastinationHandler *insightsQueries.ProcrastinationHandler,
	burnoutHandler *insightsQueries.BurnoutHandler,
	summaryHandler *insightsQueries.SummaryHandler,
) *App {
	return &App{
		CreateItemHandler:       createItemHandler,
		UpdateItemHandler:       updateItemHandler,
		CompleteItemHandler:     completeItemHandler,
		DeleteItemHandler:       deleteItemHandler,
		GetItemHandler:          getItemHandler,
		ListItemsHandler:        listItemsHandler,
		GeneratePlanHandler:     generatePlanHandler,
		ScheduleDayHandler:      scheduleDayHandler,
		ListSessionsHandler:     listSessionsHandler,
		FreeTimeHandler:         freeTimeHandler,
		AddEntryHandler:         addEntryHandler,
		UpdateEntryHandler:      updateEntryHandler,
		DeleteEntryHandler:      deleteEntryHandler,
		RecordAttendanceHandler: recordAttendanceHandler,
		DeleteAttendanceHandler: deleteAttendanceHandler,
		ListEntriesHandler:      listEntriesHandler,
		DayScheduleHandler:      dayScheduleHandler,
		ListAttendanceHandler:   listAttendanceHandler,
		AttendanceStatsHandler:  attendanceStatsHandler,
		DayWorkloadHandler:      dayWorkloadHandler,
		ProcrastinationHandler:  procrastinationHandler,
		BurnoutHandler:          burnoutHandler,
		SummaryHandler:          summaryHandler,
		CurrentUserID:           uuid.Nil,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// SetSettingsService updates the settings service.
func (a *App) SetSettingsService(service *identitySettings.Service) {
	a.SettingsService = service
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
