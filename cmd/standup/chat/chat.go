// Package chatcmder provides the chat command for a plain interactive
// conversation with the completion backend, without the agent team.
package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/standuphq/standup/pkg/cliui"
	"github.com/standuphq/standup/pkg/config"
	"github.com/standuphq/standup/pkg/llm"
	"github.com/standuphq/standup/pkg/llm/provider"
	"github.com/standuphq/standup/pkg/llm/provider/anthropic"
	"github.com/standuphq/standup/pkg/logger"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("assistant> ")
)

const systemPrompt = "You are a helpful assistant."

const chatLongDesc string = `Start an interactive chat session with the completion backend.

A single assistant, no agent team, no approval gate. Useful for checking
that the ANTHROPIC_API_KEY and model configuration work before running a
full session.

Examples:
  standup chat
  standup chat --model claude-sonnet-4-20250514`

const chatShortDesc string = "Interactive chat with the completion backend"

type chatCommander struct {
	model     string
	maxTokens uint
	debug     bool

	completer provider.Completer
	logger    *zap.Logger
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagModel,
				config.FlagMaxTokens,
			})

			cmder.model = v.GetString("model.name")
			cmder.maxTokens = v.GetUint("model.max_tokens")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			cmder.completer, err = anthropic.New(anthropic.Config{
				APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			})
			if err != nil {
				return fmt.Errorf("configuring completion backend: %w", err)
			}

			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddUintFlag(cmd, config.Flags, config.FlagMaxTokens, &cmder.maxTokens)

	return cmd
}

func (c *chatCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	fmt.Println()
	fmt.Printf("  %s %s\n\n",
		cliui.KeyStyle.Render("Model:"),
		cliui.ValueStyle.Render(c.model),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit or Ctrl+D to quit."))

	if err := c.loop(ctx, bufio.NewReader(os.Stdin)); err != nil {
		return err
	}

	fmt.Println()
	return nil
}

// loop reads messages line by line until /exit or end of input. A line
// arriving without a trailing newline is still sent before exiting.
func (c *chatCommander) loop(ctx context.Context, reader *bufio.Reader) error {
	var messages []llm.Message

	for {
		fmt.Print(userPrompt)

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("reading input: %w", readErr)
		}

		input := strings.TrimSpace(line)
		if input == "/exit" {
			return nil
		}

		if input != "" {
			messages = append(messages, llm.NewUserMessage(input))

			reply, err := c.send(ctx, messages)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
				// Remove the failed user message so we can retry
				messages = messages[:len(messages)-1]
			} else {
				messages = append(messages, llm.NewAssistantMessage(reply))

				fmt.Print(assistantPrompt)
				fmt.Println(reply)
				fmt.Println()
			}
		}

		if readErr != nil {
			return nil
		}
	}
}

// send runs one completion over the accumulated conversation.
func (c *chatCommander) send(ctx context.Context, messages []llm.Message) (string, error) {
	c.logger.Debug("sending chat request",
		zap.String("model", c.model),
		zap.Int("message_count", len(messages)),
	)

	resp, err := c.completer.Complete(ctx, &llm.ChatRequest{
		Model:     c.model,
		System:    systemPrompt,
		MaxTokens: int(c.maxTokens),
		Messages:  messages,
	})
	if err != nil {
		return "", err
	}

	return resp.Message.Content, nil
}
