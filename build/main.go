// Command build holds the developer tasks of the repository.
//
//	go run ./build -h
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/goyek/goyek/v3"
	"github.com/goyek/x/boot"
)

var test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "go test -race ./...",
	Action: func(a *goyek.A) {
		run(a, "go", "test", "-race", "./...")
	},
})

var vet = goyek.Define(goyek.Task{
	Name:  "vet",
	Usage: "go vet ./...",
	Action: func(a *goyek.A) {
		run(a, "go", "vet", "./...")
	},
})

// verify runs the validator against the repository itself when it is a marketplace
var verify = goyek.Define(goyek.Task{
	Name:  "verify",
	Usage: "go run . --strict",
	Deps:  goyek.Deps{vet},
	Action: func(a *goyek.A) {
		if _, err := os.Stat(filepath.Join(repoRoot(), ".claude-plugin", "marketplace.json")); err != nil {
			a.Skip("no .claude-plugin/marketplace.json in repository root")
		}
		run(a, "go", "run", ".", "--strict")
	},
})

var all = goyek.Define(goyek.Task{
	Name:  "all",
	Usage: "vet, test and verify",
	Deps:  goyek.Deps{vet, test, verify},
})

func run(a *goyek.A, name string, args ...string) {
	a.Helper()
	cmd := exec.CommandContext(a.Context(), name, args...)
	cmd.Dir = repoRoot()
	cmd.Stdout = a.Output()
	cmd.Stderr = a.Output()
	if err := cmd.Run(); err != nil {
		a.Fatalf("%s: %v", name, err)
	}
}

// repoRoot is the parent of this file's directory
func repoRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Dir(filepath.Dir(file))
}

func main() {
	goyek.SetDefault(all)
	boot.Main()
}
