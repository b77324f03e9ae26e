package space

// Built-in character sets for pattern placeholders.
const (
	LowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	Digits           = "0123456789"
	Punctuation      = "!@#$%^&*()_+-=[]{}|;':\",./<>?`~"
)

// DefaultClasses returns the built-in pattern class table:
// '@' expands to lowercase letters, '%' to digits, '^' to punctuation.
// Any other pattern rune is treated as a literal.
func DefaultClasses() map[rune]string {
	return map[rune]string{
		'@': LowercaseLetters,
		'%': Digits,
		'^': Punctuation,
	}
}
