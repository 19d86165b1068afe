package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/troupe-ifc/flam/internal/audit"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	AuditPath string
	Session   string
}

// runReport is the run command's output payload.
type runReport struct {
	ModelPath  string           `json:"model"`
	Principals []string         `json:"principals"`
	Labels     []labelReport    `json:"labels"`
	Decisions  []decisionReport `json:"decisions"`
	Session    string           `json:"session,omitempty"`
}

type labelReport struct {
	Name   string `json:"name"`
	Render string `json:"render"`
}

type decisionReport struct {
	Relation string `json:"relation"`
	LHS      string `json:"lhs"`
	RHS      string `json:"rhs"`
	Outcome  bool   `json:"outcome"`
}

func (r runReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "model %s: %d principal(s), %d label(s)\n",
		r.ModelPath, len(r.Principals), len(r.Labels))
	for _, l := range r.Labels {
		fmt.Fprintf(&b, "%s = %s\n", l.Name, l.Render)
	}
	for _, d := range r.Decisions {
		fmt.Fprintf(&b, "%s %s %s: %t\n", d.LHS, d.Relation, d.RHS, d.Outcome)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate all label relations of a model",
		Long: `Load the model named by -f, build its labels, and evaluate the full
flows-to and acts-for matrix over them.

Each label is printed with its diagnostic rendering (structural size and
satisfying-assignment count per component), followed by every ordered
pair's relation outcomes. With --audit, every decision is also recorded
to a SQLite decision log under a session token.

Example:
  flam run -f model.xml
  flam run -f model.cue --audit ./decisions.db --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModel(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AuditPath, "audit", "", "path to SQLite decision log (optional)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session token for the decision log (default: random UUID)")

	return cmd
}

func runModel(opts *RunOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sess, err := loadModelSession(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	report := runReport{
		ModelPath:  opts.ModelPath,
		Principals: sess.Model.Principals,
	}
	for _, spec := range sess.Model.Labels {
		report.Labels = append(report.Labels, labelReport{
			Name:   spec.Name,
			Render: sess.Labels[spec.Name].Render(sess.Store),
		})
	}

	// Full ordered-pair matrix in document order, flows-to first.
	for _, lhs := range sess.Model.Labels {
		for _, rhs := range sess.Model.Labels {
			l, r := sess.Labels[lhs.Name], sess.Labels[rhs.Name]
			report.Decisions = append(report.Decisions,
				decisionReport{
					Relation: audit.RelationFlowsTo,
					LHS:      lhs.Name,
					RHS:      rhs.Name,
					Outcome:  l.FlowsTo(sess.Store, r),
				},
				decisionReport{
					Relation: audit.RelationActsFor,
					LHS:      lhs.Name,
					RHS:      rhs.Name,
					Outcome:  l.ActsFor(sess.Store, r),
				})
		}
	}

	if opts.AuditPath != "" {
		session := opts.Session
		if session == "" {
			session = uuid.NewString()
		}
		report.Session = session
		if err := recordDecisions(cmd.Context(), opts.AuditPath, session, report.Decisions); err != nil {
			return commandError(formatter, err)
		}
		formatter.VerboseLog("recorded %d decision(s) to %s (session %s)",
			len(report.Decisions), opts.AuditPath, session)
	}

	return formatter.Success(report)
}

// recordDecisions writes a run's decisions to the audit log, stamped by
// a fresh logical clock.
func recordDecisions(ctx context.Context, path, session string, decisions []decisionReport) error {
	store, err := audit.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	clock := audit.NewClock()
	for _, d := range decisions {
		rec, err := audit.NewDecision(clock, session, d.Relation, d.LHS, d.RHS, d.Outcome)
		if err != nil {
			return err
		}
		if err := store.Record(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
