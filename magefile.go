//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles every executable into ./bin
func Build() error {
	mg.Deps(BuildExtractor, BuildMeasureCompression)
	fmt.Println("Compilation finished")
	return nil
}

func BuildExtractor() error {
	fmt.Println("Building extractor executable...")
	return goCommand("build", "-o", "./bin/extractor", "./extractor")
}

func BuildMeasureCompression() error {
	fmt.Println("Building measureCompression executable...")
	return goCommand("build", "-o", "./bin/measureCompression", "./measureCompression")
}

// Test runs the unit tests of every package
func Test() error {
	return goCommand("test", "./...")
}

// hdf5 is a cgo module, so the C flags of the environment are forwarded
func goCommand(args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", os.Getenv("CGO_LDFLAGS")),
		fmt.Sprintf("CGO_CFLAGS=%s", os.Getenv("CGO_CFLAGS")))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
