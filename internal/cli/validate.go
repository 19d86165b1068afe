package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateReport is the validate command's output payload.
type validateReport struct {
	Valid      bool   `json:"valid"`
	ModelPath  string `json:"model"`
	Principals int    `json:"principals"`
	Labels     int    `json:"labels"`
}

func (r validateReport) String() string {
	return fmt.Sprintf("model %s OK: %d principal(s), %d label(s)",
		r.ModelPath, r.Principals, r.Labels)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a model file without evaluating it",
		Long: `Load and validate the model named by -f: well-formed syntax, a
nonempty principal universe, unique names, known label kinds, and pair
components that reference declared principals.

Exits 2 with the loader's error code on any failure.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sess, err := loadModelSession(opts, formatter)
	if err != nil {
		return err
	}

	return formatter.Success(validateReport{
		Valid:      true,
		ModelPath:  opts.ModelPath,
		Principals: len(sess.Model.Principals),
		Labels:     len(sess.Model.Labels),
	})
}
