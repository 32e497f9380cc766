package session

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuth
	KindConflict
	KindCapacity
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindCapacity:
		return "capacity"
	}
	return "unknown"
}

// Error is a rejected join. Message is sent to the client verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrNoRoomID          = &Error{Kind: KindValidation, Message: "No roomId provided"}
	ErrNoPlayerName      = &Error{Kind: KindValidation, Message: "No playerName provided"}
	ErrNoColor           = &Error{Kind: KindValidation, Message: "No color provided"}
	ErrInvalidRoomID     = &Error{Kind: KindValidation, Message: "Invalid room id"}
	ErrAlreadyInRoom     = &Error{Kind: KindConflict, Message: "Player already in room"}
	ErrTooManyRooms      = &Error{Kind: KindCapacity, Message: "Too many rooms"}
	ErrIncorrectPassword = &Error{Kind: KindAuth, Message: "Incorrect password"}
)
