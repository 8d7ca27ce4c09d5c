package keypad

// Key is one logical key symbol produced by the scanner.
type Key byte

const (
	KeyNone Key = 0

	Key0 Key = '0'
	Key1 Key = '1'
	Key2 Key = '2'
	Key3 Key = '3'
	Key4 Key = '4'
	Key5 Key = '5'
	Key6 Key = '6'
	Key7 Key = '7'
	Key8 Key = '8'
	Key9 Key = '9'

	KeyAdd   Key = '+'
	KeySub   Key = '-'
	KeyMul   Key = '*'
	KeyDiv   Key = '/'
	KeyEqual Key = '='
	KeyClear Key = 'C'
)

func (k Key) IsDigit() bool { return k >= Key0 && k <= Key9 }

func (k Key) IsOperator() bool {
	switch k {
	case KeyAdd, KeySub, KeyMul, KeyDiv:
		return true
	}
	return false
}

// Digit returns the numeric value of a digit key, or -1.
func (k Key) Digit() int {
	if !k.IsDigit() {
		return -1
	}
	return int(k - Key0)
}

// Valid reports whether k belongs to the calculator alphabet.
func (k Key) Valid() bool {
	return k.IsDigit() || k.IsOperator() || k == KeyEqual || k == KeyClear
}

func (k Key) String() string {
	if k == KeyNone {
		return "none"
	}
	return string(rune(k))
}
