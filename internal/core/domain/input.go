package domain

import (
	"fmt"
	"strings"
)

// InputKind identifies which key was pressed.
type InputKind int

// Available input kinds.
const (
	// InputDigit is one of the keys 0-9.
	InputDigit InputKind = iota + 1

	// InputDecimalPoint is the "." key.
	InputDecimalPoint

	// InputOperator is one of + - × ÷.
	InputOperator

	// InputEquals is the "=" key.
	InputEquals

	// InputClear is the "C" key.
	InputClear
)

// String returns the string representation.
func (k InputKind) String() string {
	switch k {
	case InputDigit:
		return "digit"
	case InputDecimalPoint:
		return "decimal_point"
	case InputOperator:
		return "operator"
	case InputEquals:
		return "equals"
	case InputClear:
		return "clear"
	default:
		return unknownDescription
	}
}

// Operator is one of the four arithmetic operations.
type Operator int

// Available operators. OperatorNone marks "no pending operator".
const (
	OperatorNone Operator = iota
	OperatorAdd
	OperatorSub
	OperatorMul
	OperatorDiv
)

// IsValid returns true for the four arithmetic operators.
func (o Operator) IsValid() bool {
	return o >= OperatorAdd && o <= OperatorDiv
}

// String returns the string representation.
func (o Operator) String() string {
	switch o {
	case OperatorAdd:
		return "add"
	case OperatorSub:
		return "sub"
	case OperatorMul:
		return "mul"
	case OperatorDiv:
		return "div"
	case OperatorNone:
		return "none"
	default:
		return unknownDescription
	}
}

// Symbol returns the key label shown on a keypad.
func (o Operator) Symbol() string {
	switch o {
	case OperatorAdd:
		return "+"
	case OperatorSub:
		return "-"
	case OperatorMul:
		return "×"
	case OperatorDiv:
		return "÷"
	default:
		return ""
	}
}

// Apply computes a op b.
// Division checks the divisor with exact comparison against zero.
func (o Operator) Apply(a, b float64) (float64, error) {
	switch o {
	case OperatorAdd:
		return a + b, nil
	case OperatorSub:
		return a - b, nil
	case OperatorMul:
		return a * b, nil
	case OperatorDiv:
		if b == 0.0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: operator %d", ErrInvalidInput, int(o))
	}
}

// AllOperators returns the four arithmetic operators in keypad order.
func AllOperators() []Operator {
	return []Operator{OperatorAdd, OperatorSub, OperatorMul, OperatorDiv}
}

// InputEvent is a single calculator key press.
// Digit is only meaningful for InputDigit and Operator only for InputOperator.
type InputEvent struct {
	Kind     InputKind
	Digit    int
	Operator Operator
}

// DigitInput returns the event for digit d.
func DigitInput(d int) (InputEvent, error) {
	ev := InputEvent{Kind: InputDigit, Digit: d}
	if err := ev.Validate(); err != nil {
		return InputEvent{}, err
	}
	return ev, nil
}

// DecimalInput returns the decimal point event.
func DecimalInput() InputEvent {
	return InputEvent{Kind: InputDecimalPoint}
}

// OperatorInput returns the event for operator op.
func OperatorInput(op Operator) (InputEvent, error) {
	ev := InputEvent{Kind: InputOperator, Operator: op}
	if err := ev.Validate(); err != nil {
		return InputEvent{}, err
	}
	return ev, nil
}

// EqualsInput returns the equals event.
func EqualsInput() InputEvent {
	return InputEvent{Kind: InputEquals}
}

// ClearInput returns the clear event.
func ClearInput() InputEvent {
	return InputEvent{Kind: InputClear}
}

// Validate checks that the event is well formed.
func (e InputEvent) Validate() error {
	switch e.Kind {
	case InputDigit:
		if e.Digit < 0 || e.Digit > 9 {
			return fmt.Errorf("%w: digit %d out of range 0-9", ErrInvalidInput, e.Digit)
		}
	case InputOperator:
		if !e.Operator.IsValid() {
			return fmt.Errorf("%w: operator %d", ErrInvalidInput, int(e.Operator))
		}
	case InputDecimalPoint, InputEquals, InputClear:
	default:
		return fmt.Errorf("%w: input kind %d", ErrInvalidInput, int(e.Kind))
	}
	return nil
}

// Label returns the keypad label for the event, e.g. "7", ".", "×", "=", "C".
func (e InputEvent) Label() string {
	switch e.Kind {
	case InputDigit:
		return string(rune('0' + e.Digit))
	case InputDecimalPoint:
		return "."
	case InputOperator:
		return e.Operator.Symbol()
	case InputEquals:
		return "="
	case InputClear:
		return "C"
	default:
		return "?"
	}
}

// String implements fmt.Stringer.
func (e InputEvent) String() string {
	return e.Label()
}

// keyAliases maps whole-word key tokens to events.
var keyAliases = map[string]InputEvent{
	"+":      {Kind: InputOperator, Operator: OperatorAdd},
	"-":      {Kind: InputOperator, Operator: OperatorSub},
	"*":      {Kind: InputOperator, Operator: OperatorMul},
	"x":      {Kind: InputOperator, Operator: OperatorMul},
	"×":      {Kind: InputOperator, Operator: OperatorMul},
	"/":      {Kind: InputOperator, Operator: OperatorDiv},
	"÷":      {Kind: InputOperator, Operator: OperatorDiv},
	"=":      {Kind: InputEquals},
	"enter":  {Kind: InputEquals},
	".":      {Kind: InputDecimalPoint},
	",":      {Kind: InputDecimalPoint},
	"c":      {Kind: InputClear},
	"clear":  {Kind: InputClear},
	"esc":    {Kind: InputClear},
	"delete": {Kind: InputClear},
}

// ParseKey maps a single key token to an input event.
// Tokens are case-insensitive. Returns ErrUnknownKey for anything else.
func ParseKey(token string) (InputEvent, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return InputEvent{Kind: InputDigit, Digit: int(t[0] - '0')}, nil
	}
	if ev, ok := keyAliases[t]; ok {
		return ev, nil
	}
	return InputEvent{}, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// ParseKeys converts whitespace-separated tokens into events.
// A token that is not a known key is split into single characters,
// so "12.5" yields the four presses 1, 2, ., 5 and "5+3=" yields four more.
func ParseKeys(tokens ...string) ([]InputEvent, error) {
	var events []InputEvent
	for _, field := range tokens {
		for _, token := range strings.Fields(field) {
			if ev, err := ParseKey(token); err == nil {
				events = append(events, ev)
				continue
			}
			for _, r := range token {
				ev, err := ParseKey(string(r))
				if err != nil {
					return nil, fmt.Errorf("%w: %q in %q", ErrUnknownKey, string(r), token)
				}
				events = append(events, ev)
			}
		}
	}
	return events, nil
}
