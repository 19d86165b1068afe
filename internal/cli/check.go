package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/troupe-ifc/flam/internal/audit"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	AuditPath string
	Session   string
}

// checkReport is the check command's output payload.
type checkReport struct {
	Relation string `json:"relation"`
	LHS      string `json:"lhs"`
	RHS      string `json:"rhs"`
	Outcome  bool   `json:"outcome"`
}

func (r checkReport) String() string {
	return fmt.Sprintf("%s %s %s: %t", r.LHS, r.Relation, r.RHS, r.Outcome)
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <lhs> <relation> <rhs>",
		Short: "Decide one relation between two labels",
		Long: `Decide a single flows-to or acts-for relation between two labels named
in the model.

Exits 0 when the relation holds and 1 when it does not, so the command
composes in shell pipelines.

Example:
  flam check -f model.xml alice flows-to bob
  flam check -f model.xml root acts-for alice`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], args[1], args[2], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AuditPath, "audit", "", "path to SQLite decision log (optional)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session token for the decision log (default: random UUID)")

	return cmd
}

func runCheck(opts *CheckOptions, lhsName, relation, rhsName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if relation != audit.RelationFlowsTo && relation != audit.RelationActsFor {
		return commandError(formatter,
			fmt.Errorf("unknown relation %q (want %q or %q)", relation, audit.RelationFlowsTo, audit.RelationActsFor))
	}

	sess, err := loadModelSession(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	lhs, err := sess.lookupLabel(lhsName)
	if err != nil {
		return commandError(formatter, err)
	}
	rhs, err := sess.lookupLabel(rhsName)
	if err != nil {
		return commandError(formatter, err)
	}

	report := checkReport{Relation: relation, LHS: lhsName, RHS: rhsName}
	switch relation {
	case audit.RelationFlowsTo:
		report.Outcome = lhs.FlowsTo(sess.Store, rhs)
	case audit.RelationActsFor:
		report.Outcome = lhs.ActsFor(sess.Store, rhs)
	}

	if opts.AuditPath != "" {
		session := opts.Session
		if session == "" {
			session = uuid.NewString()
		}
		d := decisionReport{Relation: relation, LHS: lhsName, RHS: rhsName, Outcome: report.Outcome}
		if err := recordDecisions(cmd.Context(), opts.AuditPath, session, []decisionReport{d}); err != nil {
			return commandError(formatter, err)
		}
	}

	if err := formatter.Success(report); err != nil {
		return err
	}
	if !report.Outcome {
		return NewExitError(ExitFailure, fmt.Sprintf("%s does not %s %s", lhsName, relation, rhsName))
	}
	return nil
}
