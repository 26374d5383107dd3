package model

const TableNameFriend = "friend"

// Friend mapped from table <friend>.
// Maintained by the account subsystem; this service only migrates the table
// and never reads it.
type Friend struct {
	UID       int64 `gorm:"column:uid;primaryKey" json:"uid" form:"uid"`
	FriendUID int64 `gorm:"column:friend_uid;primaryKey" json:"friendUid" form:"friendUid"`
}

// TableName Friend's table name
func (*Friend) TableName() string {
	return TableNameFriend
}
