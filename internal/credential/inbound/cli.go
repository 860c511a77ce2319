package inbound

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shandysiswandi/gosecret/internal/credential/entity"
	"github.com/shandysiswandi/gosecret/internal/credential/usecase"
	"github.com/shandysiswandi/gosecret/internal/pkg/goerror"
	"github.com/shandysiswandi/gosecret/internal/pkg/secret"
)

type credentialUsecase interface {
	Enroll(ctx context.Context, in usecase.EnrollInput) (*entity.Credential, error)
	Verify(ctx context.Context, in usecase.VerifyInput) error
}

// Defaults seeds the check command's flags.
type Defaults struct {
	Policy string
	Mode   entity.Mode
}

type cli struct {
	uc       credentialUsecase
	defaults Defaults

	ok   *color.Color
	fail *color.Color
}

// RegisterCLI adds the credential commands to root.
func RegisterCLI(root *cobra.Command, uc credentialUsecase, defaults Defaults) {
	c := &cli{
		uc:       uc,
		defaults: defaults,
		ok:       color.New(color.FgGreen, color.Bold),
		fail:     color.New(color.FgRed),
	}

	root.AddCommand(c.checkCommand(), c.policiesCommand())
}

func (c *cli) checkCommand() *cobra.Command {
	var policy, mode string

	cmd := &cobra.Command{
		Use:   "check [password] [candidate]",
		Short: "Enroll a password under a policy and check a candidate against it",
		Long: `Enroll a password under a validation policy, then check whether a
candidate matches it. Arguments left out are read from the terminal
without echo, one per line when stdin is not a terminal.

Exit status is 0 on match, 2 when the password is rejected by the
policy, 3 on mismatch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.runCheck(cmd, args, policy, entity.Mode(mode)); err != nil {
				c.fail.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
				return err
			}
			c.ok.Fprintln(cmd.OutOrStdout(), "Password matches!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&policy, "policy", "p", c.defaults.Policy,
		"validation policy ("+strings.Join(secret.PolicyNames(), "|")+")")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(c.defaults.Mode),
		"how the password is kept (fingerprint|sealed)")

	return cmd
}

func (c *cli) runCheck(cmd *cobra.Command, args []string, policy string, mode entity.Mode) error {
	if len(args) > 2 {
		return goerror.NewInvalidFormat(fmt.Sprintf("accepts at most 2 arg(s), received %d", len(args)))
	}

	ctx := cmd.Context()
	in := bufio.NewReader(cmd.InOrStdin())

	password, err := argOrPrompt(cmd, in, args, 0, "Password: ")
	if err != nil {
		return err
	}

	cred, err := c.uc.Enroll(ctx, usecase.EnrollInput{Password: password, Policy: policy, Mode: mode})
	if err != nil {
		return err
	}

	candidate, err := argOrPrompt(cmd, in, args, 1, "Candidate: ")
	if err != nil {
		return err
	}

	return c.uc.Verify(ctx, usecase.VerifyInput{Credential: cred, Candidate: candidate})
}

func (c *cli) policiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the available validation policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range secret.PolicyNames() {
				marker := " "
				if name == c.defaults.Policy {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func argOrPrompt(cmd *cobra.Command, in *bufio.Reader, args []string, i int, label string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", goerror.NewServer(fmt.Errorf("read %s: %w", strings.TrimSuffix(label, ": "), err))
		}
		return string(b), nil
	}

	line, err := in.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return "", goerror.NewInvalidFormat(strings.ToLower(strings.TrimSuffix(label, ": ")) + " is required")
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", goerror.NewServer(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
