package calc

import (
	"fmt"

	"keycalc/display"
	"keycalc/hal"
	"keycalc/keypad"
)

// State is the calculator's working memory for one expression.
type State struct {
	Operand1 int32
	Operand2 int32
	Op       keypad.Key // keypad.KeyNone when no operator is pending
	Fault    bool       // last evaluation divided by zero
}

// Pending reports whether an operator has been entered.
func (s State) Pending() bool { return s.Op != keypad.KeyNone }

// KeySource yields one key per physical press, blocking until one is available.
type KeySource interface {
	GetKey() keypad.Key
}

// Config controls the texts and collaborators of a Controller.
type Config struct {
	Log      hal.Logger
	FaultLED hal.LED

	Prompt      string
	ResultLabel string
	FaultText   string
}

const (
	DefaultPrompt      = "Enter:"
	DefaultResultLabel = "Result:"
	DefaultFaultText   = "Error: /0"
)

// Controller owns the calculator state and renders every transition.
type Controller struct {
	out display.Sink
	cfg Config
	st  State
}

// NewController returns a controller in the initial state. Nothing is rendered until
// Reset or the first key.
func NewController(out display.Sink, cfg Config) *Controller {
	if cfg.Log == nil {
		cfg.Log = hal.NopLogger
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.ResultLabel == "" {
		cfg.ResultLabel = DefaultResultLabel
	}
	if cfg.FaultText == "" {
		cfg.FaultText = DefaultFaultText
	}
	return &Controller{out: out, cfg: cfg}
}

// State returns a copy of the current state.
func (c *Controller) State() State { return c.st }

// Reset clears the state and shows the prompt, as the C key does.
func (c *Controller) Reset() {
	c.st = State{}
	c.setFaultLED(false)

	c.out.Clear()
	c.out.SetCursor(0, 0)
	c.out.WriteString(c.cfg.Prompt)
	c.out.SetCursor(1, 0)
}

// Run handles keys from src forever.
func (c *Controller) Run(src KeySource) {
	for {
		c.Handle(src.GetKey())
	}
}

// Handle applies one key.
func (c *Controller) Handle(k keypad.Key) {
	switch {
	case k == keypad.KeyClear:
		c.Reset()

	case k.IsOperator():
		if c.st.Pending() {
			c.cfg.Log.WriteLineString(fmt.Sprintf("calc: operator %s ignored, %s pending", k, c.st.Op))
			return
		}
		c.st.Op = k
		c.out.WriteChar(' ')
		c.out.WriteChar(byte(k))
		c.out.WriteChar(' ')

	case k == keypad.KeyEqual:
		if !c.st.Pending() {
			return
		}
		c.evaluate()

	case k.IsDigit():
		d := int32(k.Digit())
		if c.st.Pending() {
			c.st.Operand2 = c.st.Operand2*10 + d
		} else {
			c.st.Operand1 = c.st.Operand1*10 + d
		}
		c.out.WriteChar(byte(k))
	}
}

func (c *Controller) evaluate() {
	a, b, op := c.st.Operand1, c.st.Operand2, c.st.Op
	res := Apply(a, b, op)

	c.out.Clear()
	c.out.SetCursor(0, 0)
	c.out.WriteString(c.cfg.ResultLabel)
	c.out.SetCursor(1, 0)

	if res.Fault {
		c.out.WriteString(c.cfg.FaultText)
		c.st.Operand1 = 0
		c.cfg.Log.WriteLineString(fmt.Sprintf("calc: %d %s %d: %v", a, op, b, res.Err()))
	} else {
		c.out.WriteInteger(res.Value)
		c.st.Operand1 = res.Value
		c.cfg.Log.WriteLineString(fmt.Sprintf("calc: %d %s %d = %d", a, op, b, res.Value))
	}
	c.st.Operand2 = 0
	c.st.Op = keypad.KeyNone
	c.st.Fault = res.Fault
	c.setFaultLED(res.Fault)
}

func (c *Controller) setFaultLED(on bool) {
	if c.cfg.FaultLED == nil {
		return
	}
	if on {
		c.cfg.FaultLED.High()
	} else {
		c.cfg.FaultLED.Low()
	}
}
