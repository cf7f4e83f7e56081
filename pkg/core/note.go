package core

// Note is a timestamped piece of text attached to a group.
//
// Date and Time are display snapshots taken at creation and are never
// recomputed. The raw creation instant remains recoverable from the ULID
// in ID. GroupID is not guaranteed to reference an existing group; notes
// may outlive or precede the group they point at.
//
// The field names follow the durable wire format and must not change.
type Note struct {
	ID      string `json:"id" yaml:"id"`
	GroupID string `json:"groupId" yaml:"groupId"`
	Content string `json:"content" yaml:"content"`
	Date    string `json:"date" yaml:"date"`
	Time    string `json:"time" yaml:"time"`
}
