package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest          Code = 100001
	NotFound            Code = 100004
	AlreadyExists       Code = 100006
	Internal            Code = 100007
	Unavailable         Code = 100008
	NotImplemented      Code = 100009
	PreconditionFailed  Code = 100012
	ConcurrencyConflict Code = 100013

	// Input codes
	InvalidQuantity  Code = 200001
	InvalidAttribute Code = 200002
	InvalidActivity  Code = 200003

	// Points and drawing codes
	DrawingNotOpen      Code = 300001
	SalesClosed         Code = 300002
	InsufficientBalance Code = 300003
	InvalidState        Code = 300004
	InvalidTransition   Code = 300005
)

var kinds = map[Code]Code{
	InvalidQuantity:  BadRequest,
	InvalidAttribute: BadRequest,
	InvalidActivity:  BadRequest,

	DrawingNotOpen:      PreconditionFailed,
	SalesClosed:         PreconditionFailed,
	InsufficientBalance: PreconditionFailed,
	InvalidState:        PreconditionFailed,
	InvalidTransition:   PreconditionFailed,
}

// KindOf returns the broad category of a code. Codes without a parent are
// their own kind.
func KindOf(code Code) Code {
	if parent, ok := kinds[code]; ok {
		return parent
	}

	return code
}
