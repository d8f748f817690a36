package literal_test

import (
	"fmt"

	"github.com/coregx/egrep/literal"
	"github.com/coregx/egrep/syntax"
)

// Example demonstrates basic usage of literal sequences
func Example() {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("bar"), true),
		literal.NewLiteral([]byte("baz"), true),
	)

	fmt.Printf("Sequence has %d literals\n", seq.Len())
	fmt.Printf("First literal: %s\n", seq.Get(0).Bytes)

	// Output:
	// Sequence has 3 literals
	// First literal: foo
}

// ExampleSeq_Minimize demonstrates removing redundant literals
func ExampleSeq_Minimize() {
	// For prefix matching, "foo" covers "foobar"
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("foobar"), true),
	)

	fmt.Printf("Before minimize: %d literals\n", seq.Len())
	seq.Minimize()
	fmt.Printf("After minimize: %d literals\n", seq.Len())
	fmt.Printf("Remaining: %s\n", seq.Get(0).Bytes)

	// Output:
	// Before minimize: 2 literals
	// After minimize: 1 literals
	// Remaining: foo
}

// ExampleExtractor_ExtractPrefixes shows the prefix set of an alternation
// followed by a bracket expression.
func ExampleExtractor_ExtractPrefixes() {
	re, _, err := syntax.Parse("^(ab|c)[xy]z*")
	if err != nil {
		panic(err)
	}

	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		fmt.Printf("%s complete=%v\n", lit.Bytes, lit.Complete)
	}

	// Output:
	// abx complete=false
	// aby complete=false
	// cx complete=false
	// cy complete=false
}
