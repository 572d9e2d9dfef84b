package domain

const (
	// Growth constants
	DEFAULT_ADG_KG_PER_DAY = 0.4
	DAYS_PER_MONTH         = 30.0

	// Weight distribution constants
	DEFAULT_STD_DEV_PERCENT = 10.0
	MIN_WEIGHT_FRACTION     = 0.5

	// Preview constants
	EXPLODE_WARNING_THRESHOLD   = 1000
	FOLD_WARNING_THRESHOLD      = 500
	EXPLODE_SECONDS_PER_HUNDRED = 5
	FOLD_SECONDS_PER_HUNDRED    = 3
	PREVIEW_SAMPLE_SIZE         = 5

	// Fold aggregation thresholds, as a share of the group's distinct animals
	FOLD_VACCINATION_MAJORITY = 0.5
	FOLD_DISEASE_SHARE        = 0.3
	FOLD_WEIGHING_MAJORITY    = 0.5

	// Identifier constants
	DEFAULT_IDENTIFIER_PATTERN   = "{batch}-{seq:3}"
	DEFAULT_BATCH_NUMBER_PATTERN = "B{year}{seq}"
	DEFAULT_BUILDING             = "B1"

	DEFAULT_HISTORY_LIMIT = 50
)
