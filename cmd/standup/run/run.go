// Package runcmder provides the run command, which drives a full
// multi-agent build session from request to published app.
package runcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/standuphq/standup/pkg/artifact"
	"github.com/standuphq/standup/pkg/cliui"
	"github.com/standuphq/standup/pkg/config"
	"github.com/standuphq/standup/pkg/conversation"
	"github.com/standuphq/standup/pkg/git"
	"github.com/standuphq/standup/pkg/llm/provider/anthropic"
	"github.com/standuphq/standup/pkg/logger"
	"github.com/standuphq/standup/pkg/orchestrator"
	"github.com/standuphq/standup/pkg/persona"
	"github.com/standuphq/standup/pkg/utils"
)

// defaultRequest is used when the user gives no request of their own.
const defaultRequest = "Build a calculator app with basic arithmetic operations."

const runLongDesc string = `Run a multi-agent build session.

Three agents (Business Analyst, Software Engineer, Product Owner) take
turns on your request. When the Product Owner declares the app ready,
you are asked to approve. Type APPROVED to publish, or anything else as
feedback and the team keeps iterating.

On approval the final HTML app is saved and published with git
(add, commit, push). The ANTHROPIC_API_KEY environment variable must be
set.

Examples:
  standup run "Build a pomodoro timer with start, pause and reset"
  standup run --max-rounds 12 --branch gh-pages`

const runShortDesc string = "Run a multi-agent build session"

type runCommander struct {
	model        string
	maxTokens    uint
	maxRounds    uint
	branch       string
	artifactPath string
	debug        bool

	logger  *zap.Logger
	spinner *cliui.Spinner
}

func NewRunCmd() *cobra.Command {
	cmder := &runCommander{}

	cmd := &cobra.Command{
		Use:   "run [request]",
		Short: runShortDesc,
		Long:  runLongDesc,
		Args:  cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagModel,
				config.FlagMaxTokens,
				config.FlagMaxRounds,
				config.FlagBranch,
				config.FlagArtifactPath,
			})

			cmder.model = v.GetString("model.name")
			cmder.maxTokens = v.GetUint("model.max_tokens")
			cmder.maxRounds = v.GetUint("session.max_rounds")
			cmder.branch = v.GetString("publish.branch")
			cmder.artifactPath = v.GetString("publish.artifact_path")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			request := strings.TrimSpace(strings.Join(args, " "))
			if request == "" {
				request = defaultRequest
			}

			return cmder.run(cmd.Context(), request)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddUintFlag(cmd, config.Flags, config.FlagMaxTokens, &cmder.maxTokens)
	config.AddUintFlag(cmd, config.Flags, config.FlagMaxRounds, &cmder.maxRounds)
	config.AddStringFlag(cmd, config.Flags, config.FlagBranch, &cmder.branch)
	config.AddStringFlag(cmd, config.Flags, config.FlagArtifactPath, &cmder.artifactPath)

	return cmd
}

func (c *runCommander) run(ctx context.Context, request string) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	completer, err := anthropic.New(anthropic.Config{
		APIKey: os.Getenv("ANTHROPIC_API_KEY"),
	})
	if err != nil {
		return fmt.Errorf("configuring completion backend: %w", err)
	}

	session := orchestrator.NewSession(
		completer,
		persona.NewRegistry(),
		newStdinPrompter(),
		artifact.NewGitPublisher("."),
		orchestrator.Config{
			Model:        c.model,
			MaxTokens:    int(c.maxTokens),
			MaxRounds:    int(c.maxRounds),
			ArtifactPath: c.artifactPath,
			Branch:       c.branch,
		},
		orchestrator.Hooks{
			TurnStarted:  c.turnStarted,
			TurnRecorded: c.turnRecorded,
		},
		c.logger,
	)

	slog := logger.ForSession(c.logger, session.ID())
	slog.Debug("session configured",
		zap.String("model", c.model),
		zap.Uint("max_rounds", c.maxRounds),
		zap.String("branch", c.branch),
		zap.String("artifact_path", c.artifactPath),
	)

	fmt.Printf("\n  %s %s\n",
		cliui.KeyStyle.Render("Request:"),
		cliui.ValueStyle.Render(request),
	)
	fmt.Printf("  %s %s %s\n",
		cliui.KeyStyle.Render("Repo:   "),
		cliui.ValueStyle.Render(git.RepoName(".")),
		cliui.DimStyle.Render(fmt.Sprintf("(session %s)", utils.Truncate(session.ID(), 8))),
	)

	outcome, err := session.Run(ctx, request)
	if err != nil {
		c.stopSpinner(err)
		return err
	}

	return reportOutcome(outcome, c.branch)
}

// turnStarted shows a spinner while the agent's completion call blocks.
func (c *runCommander) turnStarted(id persona.Identity) {
	c.spinner = cliui.StartSpinner(os.Stdout, thinkingLabel(id))
}

// turnRecorded settles any running spinner, then renders the turn.
func (c *runCommander) turnRecorded(turn conversation.Turn) {
	c.stopSpinner(nil)
	printTurn(turn)
}

func (c *runCommander) stopSpinner(err error) {
	if c.spinner == nil {
		return
	}
	c.spinner.Stop(err)
	c.spinner = nil
}

// thinkingLabel is the spinner message shown while an agent works.
func thinkingLabel(id persona.Identity) string {
	return fmt.Sprintf("%s is thinking", id)
}

// printTurn renders one recorded turn to the terminal. Human turns are
// skipped since the user just typed them.
func printTurn(turn conversation.Turn) {
	if turn.Origin.Human() {
		return
	}

	fmt.Printf("\n%s\n", cliui.Speaker(string(turn.Origin)))

	rendered, err := cliui.RenderMarkdown(turn.Content)
	if err != nil {
		fmt.Println(turn.Content)
		return
	}
	fmt.Print(rendered)
}

// reportOutcome prints the session's ending state.
func reportOutcome(outcome *orchestrator.Outcome, branch string) error {
	fmt.Println()

	if !outcome.HasArtifact {
		fmt.Printf("  %s Approved, but no html code block was found in the conversation. Nothing to publish.\n\n",
			cliui.FailMark)
		return nil
	}

	fmt.Printf("  %s Saved %s\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render(outcome.ArtifactPath),
	)

	switch outcome.Publish.Status {
	case artifact.PublishSuccess:
		fmt.Printf("  %s Published to %s after %d agent turns\n\n",
			cliui.SuccessMark,
			cliui.ValueStyle.Render(branch),
			outcome.Rounds,
		)

	case artifact.PublishNoOp:
		fmt.Printf("  %s %s\n\n", cliui.SuccessMark, cliui.DimStyle.Render("Nothing new to commit."))

	case artifact.PublishFailed:
		fmt.Printf("  %s Publish failed: %s\n\n", cliui.FailMark, outcome.Publish.Message)
		fmt.Printf("  %s\n", cliui.DimStyle.Render("The app was saved. Publish it manually with:"))
		for _, step := range artifact.RecoverySteps(outcome.ArtifactPath, branch) {
			fmt.Printf("    %s\n", cliui.ValueStyle.Render(step))
		}
		fmt.Println()
	}

	return nil
}

// stdinPrompter reads human input line by line from stdin.
type stdinPrompter struct {
	reader *bufio.Reader
}

func newStdinPrompter() *stdinPrompter {
	return &stdinPrompter{reader: bufio.NewReader(os.Stdin)}
}

func (p *stdinPrompter) Prompt(_ context.Context, label string) (string, error) {
	fmt.Printf("\n%s", cliui.PromptStyle.Render(label))

	line, err := p.reader.ReadString('\n')
	input := strings.TrimSpace(line)
	if err != nil {
		// Piped input may end without a trailing newline; a partial
		// final line still counts as the human's answer.
		if errors.Is(err, io.EOF) && input != "" {
			return input, nil
		}
		return "", fmt.Errorf("reading input: %w", err)
	}

	return input, nil
}
