package config

type WorkerKeyStruct struct {
	NoticeEmailQueue string
}

var WorkerKey = &WorkerKeyStruct{
	NoticeEmailQueue: "notice_email_queue",
}
