package common

const (
	KafkaTopicDrawingCompleted = "drawing.completed"
	KafkaTopicWinnerSelected   = "drawing.winner_selected"
)

const (
	AuditPrefixDrawing = "drawings"
	AuditMimeJSON      = "application/json"
)
