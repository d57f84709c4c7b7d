package model

const BackupRecordTypeOrder = "order"

// Backup is an append-only snapshot of a record taken before it is deleted.
type Backup struct {
	BaseModel
	OldBody    string `db:"old_body"`
	RecordType string `db:"record_type"`
	UserUID    string `db:"user_uid"`
}
