package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgov/adr"
	"github.com/c360studio/archgov/decision"
	"github.com/c360studio/archgov/export"
	"github.com/c360studio/archgov/frontmatter"
	"github.com/c360studio/archgov/relations"
	"github.com/c360studio/archgov/ruleid"
	"github.com/c360studio/archgov/rules"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the relationship graph of all governed documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}

			report, _, err := app.Validate(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
			} else {
				fmt.Fprint(out, report.Summary())
			}

			if !report.Passed() && app.cfg.Validation.FailOnViolation {
				return errViolations
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON")
	return cmd
}

func cyclesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cycles",
		Short: "Report dependency cycles between governed documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}

			coll, err := app.Load(cmd.Context(), false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cycles := relations.DetectCycles(coll.Map())
			if len(cycles) == 0 {
				fmt.Fprintf(out, "no dependency cycles in %d documents\n", coll.Len())
				return nil
			}
			for _, c := range cycles {
				fmt.Fprintln(out, relations.FormatCycle(c))
			}
			fmt.Fprintf(out, "%d cycles\n", len(cycles))
			return errViolations
		},
	}
}

func classifyCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>...",
		Short: "Report whether files are governed decision documents",
		Long: `classify reads the front matter of each file (quick mode, bounded by
docs.quick_scan_lines) and reports whether it is a governed document.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.logLevel)
			cfg, err := loadConfig(flags, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range args {
				fm, err := frontmatter.ExtractFile(path, cfg.Docs.QuickScanLines)
				if err != nil {
					return err
				}
				verdict := "not governed"
				if adr.IsGovernedDocument(path, &fm) {
					verdict = "governed"
				}
				fmt.Fprintf(out, "%s\t%s\tadr=%s type=%s\n", path, verdict, fm.Adr, fm.Type)
			}
			return nil
		},
	}
}

func scanCmd(flags *globalFlags) *cobra.Command {
	var failOnBlocked bool

	cmd := &cobra.Command{
		Use:   "scan [file]...",
		Short: "Classify the decision language of each sentence",
		Long: `scan splits documents into sentences and reports every sentence with
decision language and its outcome (blocked, warning). With no file, or
"-", it reads stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}

			out := cmd.OutOrStdout()
			var all []decision.Finding
			for _, path := range args {
				text, err := readInput(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				findings := app.classifier.ScanText(text)
				for _, f := range findings {
					fmt.Fprintf(out, "%s:%d: %s %s: %s\n", path, f.Line, f.Outcome(), f.Result.Level, f.Sentence)
				}
				all = append(all, findings...)
			}
			app.metrics.RecordFindings(all)

			summary := decision.Summary(all)
			fmt.Fprintf(out, "%d findings: %d blocked, %d warning\n",
				len(all), summary[decision.OutcomeBlocked], summary[decision.OutcomeWarning])

			if failOnBlocked && summary[decision.OutcomeBlocked] > 0 {
				return errViolations
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnBlocked, "fail-on-blocked", false, "Exit non-zero when a blocking statement is found")
	return cmd
}

func rulesCmd(flags *globalFlags) *cobra.Command {
	var severity, scope, tier string

	cmd := &cobra.Command{
		Use:   "rules [adr]",
		Short: "List rule sets, or show the rules and clauses of one ADR",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}
			reg, err := app.Registry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				rs, err := reg.GetStrictID(args[0])
				if err != nil {
					return err
				}
				printRuleSet(out, rs)
				return nil
			}

			sets, err := filterRuleSets(reg, severity, scope, tier)
			if err != nil {
				return err
			}
			for _, rs := range sets {
				fmt.Fprintf(out, "%s\t%s\trules=%d clauses=%d\n", rs.AdrID(), rs.Title(), rs.RuleCount(), rs.ClauseCount())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "Only rule sets with a rule of this severity")
	cmd.Flags().StringVar(&scope, "scope", "", "Only rule sets with a rule of this scope")
	cmd.Flags().StringVar(&tier, "tier", "", "Only one tier (constitutional, structure, runtime, governance)")
	return cmd
}

func filterRuleSets(reg *rules.Registry, severity, scope, tier string) ([]*rules.RuleSet, error) {
	var sets []*rules.RuleSet
	switch strings.ToLower(tier) {
	case "":
		sets = reg.All()
	case "constitutional":
		sets = reg.Constitutional()
	case "structure":
		sets = reg.Structure()
	case "runtime":
		sets = reg.Runtime()
	case "governance":
		sets = reg.Governance()
	default:
		return nil, fmt.Errorf("unknown tier: %s", tier)
	}

	if severity != "" {
		s, err := rules.ParseSeverity(severity)
		if err != nil {
			return nil, err
		}
		sets = keep(sets, func(rs *rules.RuleSet) bool { return rs.HasSeverity(s) })
	}
	if scope != "" {
		s, err := rules.ParseScope(scope)
		if err != nil {
			return nil, err
		}
		sets = keep(sets, func(rs *rules.RuleSet) bool { return rs.HasScope(s) })
	}
	return sets, nil
}

func keep(sets []*rules.RuleSet, pred func(*rules.RuleSet) bool) []*rules.RuleSet {
	var out []*rules.RuleSet
	for _, rs := range sets {
		if pred(rs) {
			out = append(out, rs)
		}
	}
	return out
}

func printRuleSet(w io.Writer, rs *rules.RuleSet) {
	fmt.Fprintf(w, "%s %s\n", rs.AdrID(), rs.Title())
	for _, r := range rs.Rules() {
		fmt.Fprintf(w, "  %s [%s, %s, %s] %s\n", r.ID, r.Decision, r.Severity, r.Scope, r.Summary)
		for _, c := range rs.ClausesOf(r.ID.RuleNumber()) {
			fmt.Fprintf(w, "    %s (%s) %s\n", c.ID, c.ExecutionType, c.Condition)
			if c.Enforcement != "" {
				fmt.Fprintf(w, "      enforcement: %s\n", c.Enforcement)
			}
		}
	}
}

func ruleidCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ruleid <id>...",
		Short: "Parse rule ids and look them up in the catalog",
		Long: `ruleid parses each argument (ADR-907_3_2, ADR-907.3.2, 907_3 ...),
prints its canonical form and, when the catalog knows it, its summary
or condition.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			index := rules.NewIndex(reg)

			out := cmd.OutOrStdout()
			invalid := 0
			for _, arg := range args {
				id, err := ruleid.ParseStrict(arg)
				if err != nil {
					fmt.Fprintf(out, "%s\tinvalid: %v\n", arg, err)
					invalid++
					continue
				}

				kind, text := "rule", "(not in catalog)"
				if id.IsClause() {
					kind = "clause"
					if c, ok := index.Clause(id.String()); ok {
						text = c.Condition
					}
				} else if r, ok := index.Rule(id.String()); ok {
					text = r.Summary
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", arg, id, kind, text)
			}

			if invalid > 0 {
				return fmt.Errorf("%d invalid rule ids", invalid)
			}
			return nil
		},
	}
}

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		format  string
		profile string
		output  string
		all     bool
		noRules bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export documents and rule sets as RDF or JSON",
		Long: `export writes the loaded documents and the rule catalog as Turtle,
N-Triples, JSON-LD or the JSON document model. Without --format, the
format follows the extension of --output (.ttl, .nt, .jsonld, .json)
and falls back to Turtle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") && output != "" {
				if byExt, err := export.ParseFormat(filepath.Ext(output)); err == nil {
					format = string(byExt)
				}
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			p, err := export.ParseProfile(profile)
			if err != nil {
				return err
			}

			app, err := newApp(flags)
			if err != nil {
				return err
			}
			coll, err := app.Load(cmd.Context(), all)
			if err != nil {
				return err
			}

			var sets []*rules.RuleSet
			if !noRules {
				reg, err := app.Registry()
				if err != nil {
					return err
				}
				sets = reg.All()
			}

			var sb strings.Builder
			if f == export.FormatJSON {
				if err := export.WriteJSON(&sb, export.BuildModel(coll.Map(), sets, time.Now())); err != nil {
					return err
				}
			} else {
				data, err := export.NewGraphExporter(p, coll.Documents(), sets).Export(f)
				if err != nil {
					return err
				}
				sb.WriteString(data)
			}

			return writeOutput(cmd.OutOrStdout(), output, sb.String())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatTurtle), "Output format (turtle, ntriples, jsonld, json)")
	cmd.Flags().StringVar(&profile, "profile", string(export.ProfileMinimal), "Ontology profile (minimal, bfo, cco)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&all, "all", false, "Include non-governed ADR files")
	cmd.Flags().BoolVar(&noRules, "no-rules", false, "Leave out the rule catalog")
	return cmd
}

func mapCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render the Markdown relationship map",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}
			coll, err := app.Load(cmd.Context(), false)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, relations.RenderMap(coll.Map(), time.Now()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// readInput reads path, or in when path is "-".
func readInput(in io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to out when path is empty.
func writeOutput(out io.Writer, path, data string) error {
	if path == "" {
		_, err := io.WriteString(out, data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
