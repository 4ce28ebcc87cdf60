package domain

// RoomName keys the room-membership table. A broadcaster's room is named
// after its identity.
type RoomName string

type Room struct {
	Name  RoomName
	Owner Identity
}

// RoomOf returns the room a broadcaster with the given identity fans out to.
func RoomOf(id Identity) RoomName {
	return RoomName(id)
}
