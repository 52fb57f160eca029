package api

const (
	STATE_GET_SUCCESS = "State retrieved"

	SESSION_START_SUCCESS   = "Session started"
	SESSION_START_FAILED    = "Failed to start session"
	SESSION_ANSWER_SUCCESS  = "Answer recorded"
	SESSION_ANSWER_FAILED   = "Failed to record answer"
	SESSION_ADVANCE_SUCCESS = "Advanced"
	SESSION_ADVANCE_FAILED  = "Failed to advance"
	SESSION_END_SUCCESS     = "Session ended"
	SESSION_END_FAILED      = "Failed to end session"
	SESSION_RETRY_SUCCESS   = "Retry session started"
	SESSION_RETRY_FAILED    = "Failed to start retry session"
	SESSION_RESULT_SUCCESS  = "Result retrieved"
	SESSION_RESULT_FAILED   = "Failed to get result"

	STATS_GET_SUCCESS       = "Stats retrieved"
	VOCAB_LIST_SUCCESS      = "Vocabulary retrieved"
	VOCAB_LIST_FAILED       = "Failed to list vocabulary"
	FAVORITE_TOGGLE_SUCCESS = "Favorite toggled"
	FAVORITE_TOGGLE_FAILED  = "Failed to toggle favorite"
	PARTICLE_LIST_SUCCESS   = "Particles retrieved"
	SETTINGS_SAVE_SUCCESS   = "Settings saved"
	SETTINGS_SAVE_FAILED    = "Failed to save settings"
	BACKUP_EXPORT_SUCCESS   = "Backup exported"
	BACKUP_EXPORT_FAILED    = "Failed to export backup"
	BACKUP_IMPORT_SUCCESS   = "Backup imported"
	BACKUP_IMPORT_FAILED    = "Failed to import backup"
	PROGRESS_RESET_SUCCESS  = "Progress reset"
	PROGRESS_RESET_FAILED   = "Failed to reset progress"
	KEY_CHECK_SUCCESS       = "Key checked"
	KEY_CHECK_FAILED        = "Failed to check key"
)
