package constants

const (
	MAX_MEASUREMENTS_PER_WEIGHING = 2000
	MAX_PIG_IDS_PER_FOLD          = 10000
)
