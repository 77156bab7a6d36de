package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press feeds key tokens to the engine, failing the test on unknown keys.
func press(t *testing.T, e *Engine, keys ...string) string {
	t.Helper()
	events, err := ParseKeys(keys...)
	require.NoError(t, err)
	return e.ApplyAll(events)
}

func TestNewEngine(t *testing.T) {
	e := NewEngine()

	require.NotNil(t, e)
	assert.Equal(t, "0", e.Display())
	assert.Equal(t, InitialState(), e.State())
	assert.Empty(t, e.Expression())
}

func TestEngine_DigitsConcatenate(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		expected string
	}{
		{"single digit replaces zero", []string{"7"}, "7"},
		{"multiple digits", []string{"1", "2", "3"}, "123"},
		{"decimal number", []string{"1", "2", ".", "5"}, "12.5"},
		{"typed zero is kept", []string{"0", "0"}, "00"},
		{"typed zeros stay leading", []string{"0", "5"}, "005"},
		{"leading decimal is ignored", []string{".", "5"}, "5"},
		{"zero point five", []string{"0", ".", "5"}, "00.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			assert.Equal(t, tt.expected, press(t, e, tt.keys...))
			assert.Equal(t, tt.expected, e.State().CurrentNumberText)
		})
	}
}

func TestEngine_SecondDecimalPointIgnored(t *testing.T) {
	e := NewEngine()

	got := press(t, e, "1", ".", "2", ".", "3")

	assert.Equal(t, "1.23", got)
	assert.True(t, e.State().DecimalPointEntered)
}

func TestEngine_DecimalPointRequiresDigitBetween(t *testing.T) {
	e := NewEngine()

	got := press(t, e, "1", ".", ".")

	assert.Equal(t, "1.", got)
	assert.False(t, e.State().LastInputNumeric)
}

func TestEngine_Addition(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, "8", press(t, e, "5", "+", "3", "="))

	state := e.State()
	assert.Equal(t, OperatorNone, state.PendingOperator)
	assert.Equal(t, 8.0, state.Accumulator)
	assert.Equal(t, "8", state.CurrentNumberText)
	assert.True(t, state.LastInputNumeric)
	assert.False(t, state.DecimalPointEntered)
	assert.False(t, state.AwaitingOperand)
}

func TestEngine_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		keys     string
		expected string
	}{
		{"subtract", "9 - 4 =", "5"},
		{"negative result", "3 - 5 =", "-2"},
		{"multiply", "6 * 7 =", "42"},
		{"divide", "7 / 2 =", "3.5"},
		{"one third", "1 / 3 =", "0.33333333"},
		{"two thirds rounds", "2 / 3 =", "0.66666667"},
		{"float noise trimmed", "0.1 + 0.2 =", "0.3"},
		{"decimal operand", "2.5 * 2 =", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			assert.Equal(t, tt.expected, press(t, e, tt.keys))
		})
	}
}

func TestEngine_OperandEndingInPointBlocksOperator(t *testing.T) {
	e := NewEngine()

	// "2." leaves the last input non-numeric, so "+" is dropped and
	// the following "1" appends to the first operand.
	got := press(t, e, "2", ".", "+", "1", "=")

	assert.Equal(t, "2.1", got)
	assert.Equal(t, OperatorNone, e.State().PendingOperator)
}

func TestEngine_ChainedOperatorsLeftToRight(t *testing.T) {
	e := NewEngine()

	press(t, e, "2", "+", "3", "*")
	assert.Equal(t, "5", e.Display(), "chaining shows the intermediate result")
	assert.Equal(t, OperatorMul, e.State().PendingOperator)
	assert.Equal(t, "2 + 3 ×", e.Expression())

	assert.Equal(t, "20", press(t, e, "4", "="))
}

func TestEngine_OperatorReplacedOnlyAfterOperand(t *testing.T) {
	e := NewEngine()

	// The second operator is ignored: last input was not numeric.
	press(t, e, "5", "+", "-")

	assert.Equal(t, OperatorAdd, e.State().PendingOperator)
	assert.Equal(t, "5", e.Display())
}

func TestEngine_DigitAfterOperatorStartsFreshNumber(t *testing.T) {
	e := NewEngine()

	press(t, e, "1", "2", "+")
	assert.True(t, e.State().AwaitingOperand)

	assert.Equal(t, "3", press(t, e, "3"))
	assert.False(t, e.State().AwaitingOperand)
}

func TestEngine_ZeroAfterOperator(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, "0", press(t, e, "5", "+", "0"))
	assert.Equal(t, "5", press(t, e, "="))
}

func TestEngine_DecimalPointAfterOperator(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, "0.", press(t, e, "1", "+", "."))
	assert.Equal(t, "0.5", press(t, e, "5"))
	assert.Equal(t, "1.5", press(t, e, "="))
}

func TestEngine_EqualsIgnoredWithoutPendingOperator(t *testing.T) {
	e := NewEngine()

	press(t, e, "4", "2", "=")

	assert.Equal(t, "42", e.Display())
	_, ok := e.LastCalculation()
	assert.False(t, ok)
}

func TestEngine_EqualsIgnoredRightAfterOperator(t *testing.T) {
	e := NewEngine()

	press(t, e, "4", "+", "=")

	assert.Equal(t, "4", e.Display())
	assert.Equal(t, OperatorAdd, e.State().PendingOperator)
}

func TestEngine_RepeatedEqualsIsNoop(t *testing.T) {
	e := NewEngine()

	press(t, e, "2", "+", "2", "=", "=")

	assert.Equal(t, "4", e.Display())
}

func TestEngine_ContinueFromResult(t *testing.T) {
	e := NewEngine()

	press(t, e, "5", "+", "3", "=")
	assert.Equal(t, "16", press(t, e, "*", "2", "="))
}

func TestEngine_DigitAfterResultAppends(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, "85", press(t, e, "5", "+", "3", "=", "5"))
}

func TestEngine_DecimalResultMarksPointEntered(t *testing.T) {
	e := NewEngine()

	press(t, e, "5", "/", "2", "=")

	assert.Equal(t, "2.5", e.Display())
	assert.True(t, e.State().DecimalPointEntered)
	assert.Equal(t, "2.5", press(t, e, "."), "result already has a point")
}

func TestEngine_DivisionByZero(t *testing.T) {
	e := NewEngine()

	got := press(t, e, "6", "/", "0", "=")

	assert.Equal(t, "Error: Div by 0", got)
	state := e.State()
	assert.True(t, state.IsError)
	assert.Equal(t, ErrorKindDivisionByZero, state.ErrorKind)
}

func TestEngine_DivisionByZeroDecimal(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, "Error: Div by 0", press(t, e, "6", "/", "0", ".", "0", "0", "="))
}

func TestEngine_DivisionByZeroWhileChaining(t *testing.T) {
	e := NewEngine()

	press(t, e, "6", "/", "0", "+")

	state := e.State()
	assert.True(t, state.IsError)
	assert.Equal(t, "Error: Div by 0", state.DisplayText)
	assert.Equal(t, OperatorDiv, state.PendingOperator, "operator is not replaced on error")
}

func TestEngine_DigitClearsError(t *testing.T) {
	e := NewEngine()
	press(t, e, "6", "/", "0", "=")

	got := press(t, e, "1")

	assert.Equal(t, "1", got)
	assert.False(t, e.State().IsError)
	assert.Equal(t, ErrorKindNone, e.State().ErrorKind)
}

func TestEngine_DigitClearingErrorKeepsPendingOperator(t *testing.T) {
	e := NewEngine()
	press(t, e, "6", "/", "0", "=", "3")

	// The pending division and accumulator survive the error.
	state := e.State()
	assert.Equal(t, OperatorDiv, state.PendingOperator)
	assert.Equal(t, 6.0, state.Accumulator)
	assert.Equal(t, "2", press(t, e, "="))
}

func TestEngine_ErrorBlocksOperatorAndEquals(t *testing.T) {
	e := NewEngine()
	press(t, e, "6", "/", "0", "=")
	before := e.State()

	press(t, e, "+")
	assert.Equal(t, before, e.State())

	press(t, e, "=")
	assert.Equal(t, before, e.State())
}

func TestEngine_DecimalPointDuringError(t *testing.T) {
	e := NewEngine()
	press(t, e, "6", "/", "0", "=")

	// The point key is not guarded by the error flag.
	got := press(t, e, ".")

	assert.Equal(t, "Error: Div by 0.", got)
	assert.True(t, e.State().IsError)
}

func TestEngine_ParseError(t *testing.T) {
	e := NewEngine()

	// An operand too large for float64 overflows to infinity, which
	// renders as "∞" and no longer parses as a number.
	press(t, e, strings.Repeat("9", 400), "*", "1", "=")
	require.Equal(t, "∞", e.Display())

	got := press(t, e, "+")

	assert.Equal(t, "Error", got)
	assert.True(t, e.State().IsError)
	assert.Equal(t, ErrorKindParse, e.State().ErrorKind)
	assert.Equal(t, OperatorNone, e.State().PendingOperator)
}

func TestEngine_ParseErrorAfterAppendingToInfinity(t *testing.T) {
	e := NewEngine()
	press(t, e, strings.Repeat("9", 400), "*", "1", "=")

	// Digits appended to "∞" still do not parse.
	press(t, e, "5")
	press(t, e, "+")

	assert.Equal(t, "Error", e.Display())
}

func TestEngine_NaNResultKeepsCalculating(t *testing.T) {
	e := NewEngine()
	huge := strings.Repeat("9", 400)

	// ∞ - ∞ is NaN, and "NaN" parses back as a number.
	require.Equal(t, "NaN", press(t, e, huge, "-", huge, "="))

	got := press(t, e, "+", "1", "=")

	assert.Equal(t, "NaN", got)
	assert.False(t, e.State().IsError)
	assert.Equal(t, ErrorKindNone, e.State().ErrorKind)
}

func TestEngine_LargeResultUsesShortestDigits(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"100000000000000000000000 + 0 =", "100000000000000000000000"},
		{"12345678901234567890 + 0 =", "12345678901234567000"},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			assert.Equal(t, tt.want, press(t, NewEngine(), tt.keys))
		})
	}
}

func TestEngine_ClearFromAnyState(t *testing.T) {
	tests := []struct {
		name string
		keys string
	}{
		{"fresh", ""},
		{"typing", "1 2 . 5"},
		{"pending operator", "1 2 +"},
		{"mid chain", "2 + 3 * 4"},
		{"after result", "5 + 3 ="},
		{"division error", "6 / 0 ="},
		{"parse error", strings.Repeat("9", 400) + " * 1 = +"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			press(t, e, tt.keys)

			e.Apply(ClearInput())

			assert.Equal(t, InitialState(), e.State())
			assert.Equal(t, "0", e.Display())
			assert.Empty(t, e.Expression())
		})
	}
}

func TestEngine_InvalidEventIgnored(t *testing.T) {
	e := NewEngine()
	press(t, e, "4")

	e.Apply(InputEvent{Kind: InputDigit, Digit: 12})
	e.Apply(InputEvent{Kind: InputOperator, Operator: Operator(99)})
	e.Apply(InputEvent{})

	assert.Equal(t, "4", e.Display())
	assert.Equal(t, OperatorNone, e.State().PendingOperator)
}

func TestEngine_Expression(t *testing.T) {
	e := NewEngine()

	press(t, e, "1", "2")
	assert.Empty(t, e.Expression())

	press(t, e, "+")
	assert.Equal(t, "12 +", e.Expression())

	press(t, e, "3")
	assert.Equal(t, "12 + 3", e.Expression())

	press(t, e, "=")
	assert.Empty(t, e.Expression())
}

func TestEngine_LastCalculation(t *testing.T) {
	e := NewEngine()

	press(t, e, "2", "+", "3", "*", "4", "=")

	calc, ok := e.LastCalculation()
	require.True(t, ok)
	assert.Equal(t, "2 + 3 × 4", calc.Expression)
	assert.Equal(t, "20", calc.Result)
	assert.Equal(t, 20.0, calc.Value)

	// Only the input that completed the calculation reports it.
	press(t, e, "5")
	_, ok = e.LastCalculation()
	assert.False(t, ok)
}

func TestEngine_LastCalculationNotSetOnError(t *testing.T) {
	e := NewEngine()

	press(t, e, "6", "/", "0", "=")

	_, ok := e.LastCalculation()
	assert.False(t, ok)
}

func TestEngine_Snapshot(t *testing.T) {
	e := NewEngine()
	press(t, e, "9", "-")

	snap := e.Snapshot()

	assert.Equal(t, "9", snap.Display)
	assert.Equal(t, "9 -", snap.Expression)
	assert.False(t, snap.IsError)
	assert.Equal(t, ErrorKindNone, snap.ErrorKind)
}

func TestEngine_StateIsCopy(t *testing.T) {
	e := NewEngine()
	state := e.State()

	state.DisplayText = "tampered"

	assert.Equal(t, "0", e.Display())
}

func TestErrorKind_Message(t *testing.T) {
	assert.Equal(t, "Error", ErrorKindParse.Message())
	assert.Equal(t, "Error: Div by 0", ErrorKindDivisionByZero.Message())
	assert.Empty(t, ErrorKindNone.Message())
}
