package constants

type TaskStatus string

const (
	StatusPreparing  TaskStatus = "PREPARING"
	StatusReady      TaskStatus = "READY"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusOnHold     TaskStatus = "ON_HOLD"
	StatusCompleted  TaskStatus = "COMPLETED"
)

type ActivityAction string

const (
	ActionTaskCheckedIn           ActivityAction = "TASK_CHECKED_IN"
	ActionTaskCheckedOut          ActivityAction = "TASK_CHECKED_OUT"
	ActionTaskAttachmentsUploaded ActivityAction = "TASK_ATTACHMENTS_UPLOADED"
	ActionTaskCommented           ActivityAction = "TASK_COMMENTED"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleWorker UserRole = "worker"
)
