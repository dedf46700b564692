package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/loam"
	loamAdapter "github.com/aretw0/powerset/pkg/adapters/loam"
)

type entry struct {
	id   string
	meta loamAdapter.AutomatonMetadata
	body string
}

var entries = []entry{
	{
		id: "ends-with-ab",
		meta: loamAdapter.AutomatonMetadata{
			Name:        "ends-with-ab",
			Description: "Strings over {a,b} that end in ab.",
			Tags:        []string{"classic"},
		},
		body: `States: q0,q1,q2
Alphabet: a,b
Start: q0
Accept: q2
Transitions:
q0,a->q0,q1
q0,b->q0
q1,b->q2
`,
	},
	{
		id: "epsilon-chain",
		meta: loamAdapter.AutomatonMetadata{
			Name:        "epsilon-chain",
			Description: "Only epsilon moves; the DFA collapses to a single accepting state.",
			Tags:        []string{"epsilon"},
		},
		body: `States: q0,q1,q2
Alphabet:
Start: q0
Accept: q2
Transitions:
q0,->q1
q1,->q2
`,
	},
	{
		id: "dead-end",
		meta: loamAdapter.AutomatonMetadata{
			Name:        "dead-end",
			Description: "Symbol b never leads anywhere, so the DFA is partial unless --total is used.",
			Tags:        []string{"partial"},
		},
		body: `States: q0,q1
Alphabet: a,b
Start: q0
Accept: q1
Transitions:
q0,a->q1
q1,a->q1
`,
	},
	{
		id: "third-from-last",
		meta: loamAdapter.AutomatonMetadata{
			Name:        "third-from-last",
			Description: "The third symbol from the end is a. Four NFA states become eight DFA states.",
			Tags:        []string{"blowup"},
		},
		body: `States: q0,q1,q2,q3
Alphabet: a,b
Start: q0
Accept: q3
Transitions:
q0,a->q0,q1
q0,b->q0
q1,a->q2
q1,b->q2
q2,a->q3
q2,b->q3
`,
	},
	{
		// Frontmatter only: the structure lives in the metadata.
		id: "frontmatter-only",
		meta: loamAdapter.AutomatonMetadata{
			Name:        "frontmatter-only",
			Description: "An automaton described entirely in frontmatter.",
			States:      []string{"s0", "s1"},
			Alphabet:    []string{"x"},
			Start:       "s0",
			Accept:      []string{"s1"},
		},
	},
}

func main() {
	targetDir := "examples/catalog"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		fail(err)
	}

	fmt.Printf("Generating catalog in: %s\n", targetDir)

	// No versioning: this only writes files.
	repo, err := loam.Init(targetDir, loam.WithVersioning(false))
	if err != nil {
		fail(err)
	}
	typedRepo := loam.NewTypedRepository[loamAdapter.AutomatonMetadata](repo)
	ctx := context.Background()

	for _, e := range entries {
		err := typedRepo.Save(ctx, &loam.DocumentModel[loamAdapter.AutomatonMetadata]{
			ID:      e.id,
			Content: e.body,
			Data:    e.meta,
		})
		if err != nil {
			fail(fmt.Errorf("save %s: %w", e.id, err))
		}
		fmt.Printf("- %s\n", e.id)
	}

	fmt.Println("Done. Check it with: powerset validate --catalog", targetDir)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
