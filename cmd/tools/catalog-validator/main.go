// cmd/tools/catalog-validator/main.go
//
// Validates an industry catalogue file before it is deployed as an
// override for the built-in profiles. Run from the repository root:
//
//	go run ./cmd/tools/catalog-validator -path configs/catalog.json
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"sitegen-workers/pkg/catalog"
)

func main() {
	path := flag.String("path", "configs/catalog.json", "Path to the catalogue JSON file")
	verbose := flag.Bool("v", false, "Print a per-industry summary after validation")
	flag.Parse()

	// Load validates structural invariants before returning.
	cat, err := catalog.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogue rejected: %v\n", err)
		os.Exit(1)
	}

	profiles := make([]catalog.IndustryProfile, len(cat.Industries))
	copy(profiles, cat.Industries)
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Tag < profiles[j].Tag })

	fmt.Printf("catalogue %s is valid: %d industries\n", *path, len(profiles))
	if !*verbose {
		return
	}

	for _, profile := range profiles {
		fmt.Printf("  %-16s services=%d keywords=%d icons=%d faq=%d questions=%d\n",
			profile.Tag,
			len(profile.ServiceCatalog),
			len(profile.Keywords),
			len(profile.ServiceIcons),
			len(profile.FAQBank),
			len(profile.Questions),
		)
	}
}
