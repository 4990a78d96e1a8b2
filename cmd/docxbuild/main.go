package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kundan048/docx-builder/internal/manifest"
	"github.com/kundan048/docx-builder/pkg/docxbuilder"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/splice"
)

const version = "0.1.0"

func usage() {
	fmt.Fprintln(os.Stderr, "docxbuild - Build DOCX files from text, tables and other documents")
	fmt.Fprintln(os.Stderr, "\nUsage: docxbuild <command> [arguments]")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	fmt.Fprintln(os.Stderr, "  build [-o out.docx] [-config file.yaml] <manifest.yaml>   Build a document from a manifest")
	fmt.Fprintln(os.Stderr, "  extract [-rels] <file.docx>                                Print the body (or relationships) of a document")
	fmt.Fprintln(os.Stderr, "  validate <file.docx>                                       Check relationships and content types")
	fmt.Fprintln(os.Stderr, "  version                                                    Show version information")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch command := os.Args[1]; command {
	case "build":
		err = runBuild(os.Args[2:])
	case "extract":
		err = runExtract(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "version":
		fmt.Printf("docxbuild version %s\n", version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "output file (default: the manifest's output, or out.docx)")
	configPath := fs.String("config", "", "YAML configuration file")
	verbose := fs.Bool("v", false, "print the merge report")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("build expects one manifest file")
	}

	config := docxbuilder.GetGlobalConfig()
	if *configPath != "" {
		loaded, err := docxbuilder.LoadConfigFile(*configPath)
		if err != nil {
			return err
		}
		config = loaded
		docxbuilder.SetGlobalConfig(config)
	}

	m, err := manifest.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	if m.Template != "" {
		config.TemplatePath = m.Resolve(m.Template)
	}

	doc := docxbuilder.New(docxbuilder.WithConfig(config))
	if err := m.Apply(doc); err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = m.Resolve(m.Output)
	}
	if out == "" {
		out = "out.docx"
	}

	data, report, err := doc.Report()
	if err != nil {
		return err
	}
	if err := docxbuilder.WriteFile(out, data); err != nil {
		return err
	}
	if *verbose {
		printReport(report)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
	return nil
}

func printReport(report *splice.Report) {
	dispositions := make([]string, 0, len(report.Counts))
	for d := range report.Counts {
		dispositions = append(dispositions, string(d))
	}
	sort.Strings(dispositions)
	for _, d := range dispositions {
		fmt.Printf("  %-9s %d\n", d, report.Count(splice.Disposition(d)))
	}
	for _, diag := range report.Diagnostics {
		fmt.Printf("  warning: %s\n", diag)
	}
	if len(report.Written) > 0 {
		fmt.Printf("  written: %s\n", strings.Join(report.Written, ", "))
	}
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	rels := fs.Bool("rels", false, "print the relationship manifest instead of the body")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("extract expects one .docx file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	frags, _, err := splice.ExtractBytes(data)
	if err != nil {
		return err
	}
	if *rels {
		fmt.Println(frags.Relationships)
	} else {
		fmt.Println(frags.Body)
	}
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("validate expects one .docx file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := docxbuilder.Validate(data); err != nil {
		return err
	}
	fmt.Printf("%s: OK\n", fs.Arg(0))
	return nil
}
