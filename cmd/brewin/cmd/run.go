package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dinothaurs/cs131interpretor/internal/dialect"
	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/frontend/fromtext"
	"github.com/dinothaurs/cs131interpretor/pkg/brewin"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Brewin program written in fromtext",
	Long: `Execute a Brewin program from a file or inline fromtext expression.

Examples:
  brewin run program.brew
  brewin run -e '(func main () void (call print "hi"))'
  brewin run --dialect=v3 program.brew`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline fromtext source instead of reading from a file")
}

func runScript(cmd *cobra.Command, args []string) error {
	var src string
	switch {
	case evalExpr != "":
		src = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		src = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	dialectName, _ := cmd.Flags().GetString("dialect")
	d, ok := dialect.ByName(dialectName)
	if !ok {
		return fmt.Errorf("unknown dialect %q (want v1, v2, v3, or v4)", dialectName)
	}
	maxRecursion, _ := cmd.Flags().GetInt("max-recursion")

	program, err := fromtext.Parse(src)
	if err != nil {
		return err
	}

	interp := brewin.New(brewin.StaticOptions{
		Dialect:           d,
		MaxRecursionDepth: maxRecursion,
		Stdout:            os.Stdout,
		Stdin:             os.Stdin,
	})

	if err := interp.Run(program); err != nil {
		if ierr, ok := err.(*ierrors.Error); ok {
			return fmt.Errorf("%s: %s", ierr.Kind, ierr.Message)
		}
		return err
	}
	return nil
}
