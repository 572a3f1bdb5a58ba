package bus

// Topic names shared across the application.
const (
	TopicError = "bus.error"

	TopicShiftCreated    = "shift.created"
	TopicShiftUpdated    = "shift.updated"
	TopicShiftRemoved    = "shift.removed"
	TopicShiftMoved      = "shift.moved"
	TopicEmployeeUpdated = "employee.updated"
	TopicEmployeeRemoved = "employee.removed"

	TopicAPIError = "api.error"

	TopicStateDirty = "state.dirty"
	TopicStateSaved = "state.saved"

	TopicDragStarted    = "drag.started"
	TopicDragCommitted  = "drag.committed"
	TopicDragRolledBack = "drag.rolledback"

	TopicSyncCompleted   = "sync.completed"
	TopicReconcileReport = "reconcile.report"
)
