// Package counter measures text in the unit reports are sized in.
//
// Three strategies implement the Counter interface: whitespace-delimited
// words (the default), UTF-8 characters, and model tokenizer tokens using
// tiktoken's cl100k_base encoding. A report uses one counter to size both
// document versions and the removed and added text of every edit, so all
// strategies count plain strings and need no document structure.
package counter

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units (words, tokens, or characters) in given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Words counts whitespace-delimited words (default)
	Words CountingMethod = iota
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
	// Characters counts individual characters including whitespace
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Words:
		return "words"
	case Tokens:
		return "tokens"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// NewCounter creates a new Counter instance based on the specified method.
// This functions as a factory; it returns concrete Counter types,
// providing a single, simple entry point to get a counter instance.
// Returns an error if the counter cannot be initialized (e.g., tiktoken encoding fails).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Tokens:
		return NewTokenCounter()
	case Characters:
		return NewCharCounter(), nil
	default:
		return NewWordCounter(), nil
	}
}
