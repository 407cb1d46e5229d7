package config

type WorkerKeyStruct struct {
	ActivityQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ActivityQueue: "activity_log_queue",
}
