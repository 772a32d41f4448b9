//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
// Usage: mage
var Default = Test

// Test runs all unit tests.
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Build compiles the module and vets it.
func Build() error {
	fmt.Println("Building...")
	if err := sh.RunV("go", "build", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "./...")
}

// Wasm type-checks the browser example.
func Wasm() error {
	fmt.Println("Building wasm example...")
	return sh.RunWithV(map[string]string{"GOOS": "js", "GOARCH": "wasm"},
		"go", "build", "-o", "/dev/null", "./examples/browser-ticker")
}

// Fmt runs go fmt on the module.
func Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("go", "fmt", "./...")
}

// All runs formatting, build, and tests (good for local pre-push).
func All() error {
	for _, step := range []func() error{Fmt, Build, Test, Wasm} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
