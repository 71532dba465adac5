package domain

// SettingLockFutureWeeks is the settings key for the week-lock flag.
const SettingLockFutureWeeks = "lock_future_weeks"

// Settings holds the process-wide configuration stored in the database.
// LockFutureWeeks defaults to true: athletes may not view or act on weeks
// beyond their resolved current week.
type Settings struct {
	LockFutureWeeks bool `bson:"lockFutureWeeks" json:"lockFutureWeeks"`
}
