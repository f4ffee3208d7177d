package model

// Counter holds the last assigned sequence number for an identifier
// namespace. Owned exclusively by the allocator; mutated only through its
// atomic increment.
// Matches the counters table schema.
type Counter struct {
	ID  string `gorm:"primaryKey;column:id;type:varchar(32)" json:"id"`
	Seq int64  `gorm:"column:seq;not null"                   json:"seq"`
}

// TableName specifies the table name for GORM.
func (Counter) TableName() string {
	return "counters"
}
