// cmd/tools/schema-lint/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"fostercare-intake/pkg/registry"
)

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)

	// List command flags
	listPath := listCmd.String("path", "", "Path to a registry file (default: embedded catalog)")

	// Check command flags
	checkPath := checkCmd.String("path", "", "Path to a registry file (default: embedded catalog)")
	record := checkCmd.String("record", "", "Record schema name to validate against")
	docPath := checkCmd.String("doc", "", "Path to a JSON document to validate")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		listCmd.Parse(os.Args[2:])
		reg, err := load(*listPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry version %s\n", reg.Version())
		for _, name := range reg.Names() {
			fmt.Printf("  - %s\n", name)
		}

	case "check":
		checkCmd.Parse(os.Args[2:])
		if *record == "" || *docPath == "" {
			fmt.Println("Error: record and doc are required for check.")
			checkCmd.Usage()
			os.Exit(1)
		}
		reg, err := load(*checkPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		data, err := os.ReadFile(*docPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		var doc interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			fmt.Printf("Error: document is not valid JSON: %v\n", err)
			os.Exit(1)
		}
		if err := reg.Validate(*record, doc); err != nil {
			fmt.Printf("FAIL: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: document matches %q schema\n", *record)

	default:
		help()
		os.Exit(1)
	}
}

func load(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Load()
	}
	return registry.LoadFile(path)
}

func help() {
	fmt.Println("Usage: schema-lint <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  list   List the record schemas in a registry catalog")
	fmt.Println("  check  Validate a JSON document against a record schema")
}
