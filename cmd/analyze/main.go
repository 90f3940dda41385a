package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"ai-legalassist-core/internal/service"

	"github.com/fatih/color"
)

// Runs the text analyzer over a file (or stdin) and prints the findings.
// Usage: analyze [file]
func main() {
	var text []byte
	var err error
	if len(os.Args) > 1 {
		text, err = os.ReadFile(os.Args[1])
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	analyzer := service.NewAnalyzerService()
	analysis := analyzer.Analyze(string(text), 3)

	color.Cyan("📄 Document Type: %s", analysis.DocumentType)
	color.Cyan("⚖️  Risk: %.1f/10 (%s)", analysis.RiskScore, analysis.RiskLabel)

	if len(analysis.RiskIndicators) > 0 {
		color.Red("\nRisk Indicators:")
		for _, indicator := range analysis.RiskIndicators {
			color.Red("  [%s] %q: %s", indicator.Severity, indicator.Phrase, indicator.Description)
		}
	}

	if len(analysis.LegalTerms) > 0 {
		color.Yellow("\nLegal Terms:")
		for _, term := range analysis.LegalTerms {
			color.Yellow("  %q (%s): %s", term.Term, term.Category, term.Description)
		}
	}

	if len(analysis.Entities) > 0 {
		color.Green("\nEntities:")
		for _, e := range analysis.Entities {
			color.Green("  [%s] %s", e.Type, e.Text)
		}
	}

	fmt.Println()
	color.White("Summary: %s", analysis.Summary)
}
