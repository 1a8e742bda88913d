package sitecanvas_test

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aretw0/sitecanvas"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
)

// Example shows the basic loop: open a document, apply a command by its
// wire name and publish the result.
func Example() {
	site, err := sitecanvas.New()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	_, diff, err := site.Apply(ctx, "home", "set_view_mode", map[string]any{"mode": "mobile"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("view mode:", *diff.ViewMode)

	page, err := site.Publish(ctx, "home", "")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(bytes.Contains(page, []byte(`data-view-mode="mobile"`)))
	fmt.Println(bytes.Contains(page, []byte("Welcome to Website Builder")))

	// Output:
	// view mode: mobile
	// true
	// true
}

// ExampleSite_Dispatch edits with typed commands and walks the history back.
func ExampleSite_Dispatch() {
	site, err := sitecanvas.New()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	state, _, err := site.Dispatch(ctx, "home", editor.InsertAtRoot{Element: domain.Element{
		ID:     "rule",
		Type:   domain.ElementDivider,
		Styles: domain.Styles{},
	}})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("selected:", state.Selected())
	fmt.Println("undo steps:", len(state.History.Past))

	state, _, err = site.Dispatch(ctx, "home", editor.Undo{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("redo steps:", len(state.History.Future))

	// Output:
	// selected: rule
	// undo steps: 1
	// redo steps: 1
}
