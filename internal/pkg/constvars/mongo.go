package constvars

const (
	MongoCollectionScheduleBlocks = "schedule_blocks"
	MongoCollectionAppointments   = "appointments"
)
