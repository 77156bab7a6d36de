package domain

import (
	"errors"
	"strings"
)

// InitialDisplay is shown by a fresh or cleared engine.
const InitialDisplay = "0"

// ErrorKind classifies a failed calculation.
type ErrorKind string

// Available error kinds.
const (
	// ErrorKindNone means the engine is not in an error state.
	ErrorKindNone ErrorKind = ""

	// ErrorKindParse means the current operand could not be parsed.
	ErrorKindParse ErrorKind = "parse"

	// ErrorKindDivisionByZero means a division by exactly zero was attempted.
	ErrorKindDivisionByZero ErrorKind = "division_by_zero"
)

// Message returns the text displayed for the error.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorKindParse:
		return "Error"
	case ErrorKindDivisionByZero:
		return "Error: Div by 0"
	default:
		return ""
	}
}

// EngineState is the running state of a calculator.
// It is owned by a single Engine and only changes through Engine.Apply.
type EngineState struct {
	// DisplayText is the text currently shown.
	DisplayText string

	// CurrentNumberText is the raw text of the operand being typed.
	CurrentNumberText string

	// PendingOperator awaits a second operand. OperatorNone when idle.
	PendingOperator Operator

	// Accumulator is the stored left-hand operand.
	Accumulator float64

	// AwaitingOperand is set right after an operator is chosen;
	// the next digit starts a fresh number instead of appending.
	AwaitingOperand bool

	// DecimalPointEntered is set once the current number has a point.
	DecimalPointEntered bool

	// LastInputNumeric is set when the last accepted input was numeric.
	LastInputNumeric bool

	// IsError blocks operator and equals processing until cleared.
	IsError bool

	// ErrorKind says why IsError is set.
	ErrorKind ErrorKind
}

// InitialState returns the state of a freshly constructed engine.
func InitialState() EngineState {
	return EngineState{DisplayText: InitialDisplay}
}

// Calculation is a completed "a op b ... =" evaluation.
type Calculation struct {
	// Expression is the operand/operator trail, e.g. "2 + 3 × 4".
	Expression string

	// Result is the formatted result as displayed.
	Result string

	// Value is the unformatted result.
	Value float64
}

// Snapshot is what a front end needs to render after an input.
type Snapshot struct {
	Display    string
	Expression string
	IsError    bool
	ErrorKind  ErrorKind
}

// Engine is the calculator state machine.
//
// An Engine is not safe for concurrent use; callers serialise Apply.
type Engine struct {
	state EngineState

	// tape holds the operands and operator symbols of the expression
	// in progress. It mirrors PendingOperator.
	tape []string

	// last is the calculation completed by the most recent Apply.
	last *Calculation
}

// NewEngine creates an engine showing "0".
func NewEngine() *Engine {
	return &Engine{state: InitialState()}
}

// Apply feeds one input to the engine. Malformed events are ignored.
// Failures never escape: they are recorded in the state instead.
func (e *Engine) Apply(ev InputEvent) {
	e.last = nil
	if ev.Validate() != nil {
		return
	}

	switch ev.Kind {
	case InputClear:
		e.clear()
	case InputDigit:
		e.digit(ev.Digit)
	case InputDecimalPoint:
		e.decimalPoint()
	case InputOperator:
		e.operator(ev.Operator)
	case InputEquals:
		e.equals()
	}
}

// ApplyAll feeds events in order and returns the final display.
func (e *Engine) ApplyAll(events []InputEvent) string {
	for _, ev := range events {
		e.Apply(ev)
	}
	return e.Display()
}

// Display returns the text to render.
func (e *Engine) Display() string {
	return e.state.DisplayText
}

// State returns a copy of the engine state.
func (e *Engine) State() EngineState {
	return e.state
}

// Expression returns the expression in progress, e.g. "2 + 3".
// It is empty once equals completes or the engine is cleared.
func (e *Engine) Expression() string {
	parts := e.tape
	if e.state.CurrentNumberText != "" && len(parts) > 0 {
		parts = append(parts[:len(parts):len(parts)], e.state.CurrentNumberText)
	}
	return strings.Join(parts, " ")
}

// LastCalculation returns the calculation completed by the most
// recent Apply, if that input was a successful equals.
func (e *Engine) LastCalculation() (Calculation, bool) {
	if e.last == nil {
		return Calculation{}, false
	}
	return *e.last, true
}

// Snapshot returns the renderable view of the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Display:    e.state.DisplayText,
		Expression: e.Expression(),
		IsError:    e.state.IsError,
		ErrorKind:  e.state.ErrorKind,
	}
}

func (e *Engine) clear() {
	e.state = InitialState()
	e.tape = nil
}

func (e *Engine) digit(d int) {
	s := &e.state

	// Only the error flag and display are reset here; a pending
	// operator and accumulator survive the error.
	if s.IsError {
		s.DisplayText = InitialDisplay
		s.IsError = false
		s.ErrorKind = ErrorKindNone
	}

	if s.AwaitingOperand {
		s.DisplayText = ""
		s.AwaitingOperand = false
	}

	if s.DisplayText == InitialDisplay && d != 0 {
		s.DisplayText = ""
	}

	s.DisplayText += string(rune('0' + d))
	s.LastInputNumeric = true
	s.CurrentNumberText = s.DisplayText
}

func (e *Engine) decimalPoint() {
	s := &e.state

	if s.AwaitingOperand {
		s.DisplayText = InitialDisplay
		s.AwaitingOperand = false
		s.LastInputNumeric = true
	}

	if !s.LastInputNumeric || s.DecimalPointEntered {
		return
	}

	s.DisplayText += "."
	// A digit must follow before another point or an operator is accepted.
	s.LastInputNumeric = false
	s.DecimalPointEntered = true
	s.CurrentNumberText = s.DisplayText
}

func (e *Engine) operator(op Operator) {
	s := &e.state
	if !s.LastInputNumeric || s.IsError {
		return
	}

	operand := s.CurrentNumberText
	if s.PendingOperator != OperatorNone {
		result, ok := e.calculate()
		if !ok {
			return
		}
		s.Accumulator = result
		s.DisplayText = FormatNumber(result)
		e.tape = append(e.tape, operand, op.Symbol())
	} else {
		v, err := ParseOperand(operand)
		if err != nil {
			e.fail(ErrorKindParse)
			return
		}
		s.Accumulator = v
		e.tape = []string{operand, op.Symbol()}
	}

	s.PendingOperator = op
	s.LastInputNumeric = false
	s.DecimalPointEntered = false
	s.CurrentNumberText = ""
	s.AwaitingOperand = true
}

func (e *Engine) equals() {
	s := &e.state
	if !s.LastInputNumeric || s.PendingOperator == OperatorNone || s.IsError {
		return
	}

	operand := s.CurrentNumberText
	result, ok := e.calculate()
	if !ok {
		return
	}

	text := FormatNumber(result)
	expression := strings.Join(append(e.tape[:len(e.tape):len(e.tape)], operand), " ")

	s.DisplayText = text
	s.Accumulator = result
	s.PendingOperator = OperatorNone
	s.CurrentNumberText = text
	s.LastInputNumeric = true
	s.DecimalPointEntered = strings.Contains(text, ".")
	s.AwaitingOperand = false

	e.tape = nil
	e.last = &Calculation{Expression: expression, Result: text, Value: result}
}

// calculate applies the pending operator to the accumulator and the
// current operand. On failure the error is recorded and ok is false.
func (e *Engine) calculate() (float64, bool) {
	s := &e.state

	v, err := ParseOperand(s.CurrentNumberText)
	if err != nil {
		e.fail(ErrorKindParse)
		return 0, false
	}

	result, err := s.PendingOperator.Apply(s.Accumulator, v)
	switch {
	case errors.Is(err, ErrDivisionByZero):
		e.fail(ErrorKindDivisionByZero)
		return 0, false
	case err != nil:
		e.fail(ErrorKindParse)
		return 0, false
	}
	return result, true
}

func (e *Engine) fail(kind ErrorKind) {
	e.state.DisplayText = kind.Message()
	e.state.IsError = true
	e.state.ErrorKind = kind
}
