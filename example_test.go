package navigate_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bjaus/navigate"
)

func Example() {
	r := navigate.New()

	r.Register(navigate.Route{
		Path: "/home",
		Operation: navigate.Proc(func(path string, params navigate.Params) {
			fmt.Printf("Showing %s with alert %q\n", path, params["alert"])
		}),
	})

	path, _ := navigate.EncodeQuery("/home", navigate.Params{"alert": "Pizza is here!"})
	fmt.Println(path)

	if !r.Route(path) {
		log.Fatal("no route")
	}

	// Output:
	// /home?alert=Pizza%20is%20here%21
	// Showing /home with alert "Pizza is here!"
}

func Example_preconditions() {
	r := navigate.New(
		navigate.WithOnPreconditionFailed(func(ctx context.Context, id, path, redirect string) {
			fmt.Printf("%s sent %s to %s\n", id, path, redirect)
		}),
	)

	// Guard redirects unless the navigated path carries a token.
	r.RegisterPrecondition(navigate.Guard("signed-in", navigate.HasParams("token"), "/login"))

	r.MassAdd(
		navigate.Route{
			Path:          "/account",
			Preconditions: []string{"signed-in"},
			Operation: navigate.Proc(func(path string, params navigate.Params) {
				fmt.Println("Account for", params["token"])
			}),
		},
		navigate.Route{
			Path: "/login",
			Operation: navigate.Proc(func(string, navigate.Params) {
				fmt.Println("Please sign in")
			}),
		},
	)

	r.Route("/account?token=abc")
	r.Route("/account")

	// Output:
	// Account for abc
	// Please sign in
	// signed-in sent /account to /login
}

func Example_observer() {
	r := navigate.New(navigate.WithObserver(navigate.ObserverFuncs{
		OnWillRoute: func(path string) { fmt.Println("will route", path) },
		OnDidRoute:  func(path string) { fmt.Println("did route", path) },
		OnNotFound:  func(path string) { fmt.Println("not found", path) },
	}))

	r.Register(navigate.Route{Path: "/settings"})

	r.Route("/settings?tab=privacy")
	r.Route("/missing")

	// Output:
	// will route /settings?tab=privacy
	// did route /settings?tab=privacy
	// not found /missing
}

func Example_dispatchErrors() {
	r := navigate.New()
	r.Register(navigate.Route{
		Path: "/save",
		Operation: func(ctx context.Context, path string, params navigate.Params) error {
			return errors.New("disk full")
		},
	})

	err := r.Dispatch(context.Background(), "/save")
	fmt.Println(errors.Is(err, navigate.ErrOperationFailed))

	err = r.Dispatch(context.Background(), "/nowhere")
	fmt.Println(errors.Is(err, navigate.ErrNotFound))

	// Output:
	// true
	// true
}

func Example_manifest() {
	manifest := []byte(`
preconditions:
  - id: has-order
    require: [order]
    redirect: /orders
routes:
  - path: /orders
    operation: list
  - path: /checkout
    operation: checkout
    preconditions: [has-order]
`)

	r := navigate.New()
	err := navigate.LoadManifest(r, manifest, navigate.Operations{
		"list": navigate.Proc(func(string, navigate.Params) {
			fmt.Println("Listing orders")
		}),
		"checkout": navigate.Proc(func(_ string, params navigate.Params) {
			fmt.Println("Checking out order", params["order"])
		}),
	})
	if err != nil {
		log.Fatal(err)
	}

	r.Route("/checkout?order=42")
	r.Route("/checkout")

	// Output:
	// Checking out order 42
	// Listing orders
}
