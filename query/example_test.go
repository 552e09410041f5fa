package query_test

import (
	"errors"
	"fmt"

	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/jferrors"
	"github.com/erraggy/jfather/query"
)

func ExampleGet() {
	doc, _ := document.Decode([]byte(`{"members": [{"name": "Molecule Man"}, {"name": "Madame Uppercut"}]}`))

	name, err := query.Get(doc, "members[1].name")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(name)
	// Output:
	// "Madame Uppercut"
}

func ExampleGet_invalidPath() {
	_, err := query.Get(document.Object(), ".?foo")
	fmt.Println(err)
	fmt.Println(errors.Is(err, jferrors.ErrInvalidPath))
	// Output:
	// invalid path: .?foo
	// true
}
