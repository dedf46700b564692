package powerset_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/pkg/dsl"
	"github.com/aretw0/powerset/pkg/parser"
)

// ExampleConverter_Convert converts an NFA accepting strings over {a,b} that end in "ab".
func ExampleConverter_Convert() {
	b := dsl.New()
	b.State("q0").Start().On("a", "q0", "q1").On("b", "q0")
	b.State("q1").On("b", "q2")
	b.State("q2").Accept()

	conv, err := powerset.New("")
	if err != nil {
		log.Fatal(err)
	}

	res, err := conv.Convert(context.Background(), b.MustBuild())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("start:", res.DFA.Start())
	fmt.Println("states:", res.DFA.States())
	fmt.Println("accept:", res.DFA.Accept())
	// Output:
	// start: {q0}
	// states: [{q0,q1} {q0,q2} {q0}]
	// accept: [{q0,q2}]
}

// ExampleConverter_ConvertDefinition parses the text format, with an epsilon
// transition written as an empty symbol, and prints the DFA back in the same format.
func ExampleConverter_ConvertDefinition() {
	src := `States: p,q
Alphabet: x
Start: p
Accept: q
Transitions:
p,->q
q,x->q
`
	def, err := parser.New().Parse(strings.NewReader(src))
	if err != nil {
		log.Fatal(err)
	}

	conv, _ := powerset.New("", powerset.WithoutTrace())
	res, err := conv.ConvertDefinition(context.Background(), def)
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range res.DFA.Entries() {
		fmt.Printf("%s,%s->%s\n", e.From, e.Symbol, e.To[0])
	}
	fmt.Println("accepting start:", res.DFA.IsAccepting(res.DFA.Start()))
	// Output:
	// {p,q},x->{q}
	// {q},x->{q}
	// accepting start: true
}
