package ds

import "fmt"

// State состояние заявки на поддержку
type State string

const (
	StateDraft     State = "Draft"
	StateSubmitted State = "Submitted"
	StateApproved  State = "Approved"
	StateRejected  State = "Rejected"
	StatePosted    State = "Posted"
	StateCanceled  State = "Canceled"
)

// States полный список состояний
var States = []State{StateDraft, StateSubmitted, StateApproved, StateRejected, StatePosted, StateCanceled}

func (s State) String() string {
	return string(s)
}

func (s State) Valid() bool {
	switch s {
	case StateDraft, StateSubmitted, StateApproved, StateRejected, StatePosted, StateCanceled:
		return true
	default:
		return false
	}
}

func ParseState(s string) (State, error) {
	st := State(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown state %q", s)
	}
	return st, nil
}

// Reason причина запроса поддержки
type Reason string

const (
	ReasonDisplayContract Reason = "DC"
	ReasonPremiumSupport  Reason = "PS"
	ReasonPriceReduction  Reason = "PR"
	ReasonFromBalance     Reason = "FB"
)

func (r Reason) String() string {
	return string(r)
}

func (r Reason) Valid() bool {
	switch r {
	case ReasonDisplayContract, ReasonPremiumSupport, ReasonPriceReduction, ReasonFromBalance:
		return true
	default:
		return false
	}
}

// Itemized только снижение цены хранит строки по товарам, остальные причины используют одну агрегированную строку
func (r Reason) Itemized() bool {
	switch r {
	case ReasonPriceReduction:
		return true
	case ReasonDisplayContract, ReasonPremiumSupport, ReasonFromBalance:
		return false
	default:
		return false
	}
}

func ParseReason(s string) (Reason, error) {
	r := Reason(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown reason %q", s)
	}
	return r, nil
}

// DocumentState состояние кредит-ноты
type DocumentState int

const (
	DocumentValid DocumentState = 0
	DocumentVoid  DocumentState = -1
)
