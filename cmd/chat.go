package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crystaldolphin/toolchat/internal/agent"
	"github.com/crystaldolphin/toolchat/internal/providers"
	"github.com/crystaldolphin/toolchat/internal/session"
	"github.com/crystaldolphin/toolchat/internal/shared/cmdutils"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE:  runChat,
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

var roleTitle = cases.Title(language.English)

func runChat(_ *cobra.Command, _ []string) error {
	container, err := loadContainer()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "  ↳ connecting to %d servers...\n", len(container.Config().Tools.MCPServers))
	sess, err := container.OpenSession(context.Background(), replHooks())
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Printf("%s Interactive mode with %d tools (type 'exit' or Ctrl+C to quit, /help for commands)\n\n", logo, sess.Catalog.Len())

	listenForSignals(sess)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		if strings.HasPrefix(line, "/") {
			runSlashCommand(sess, line)
			continue
		}

		answer, err := sess.Submit(context.Background(), line)
		if err != nil {
			reportRoundError(err)
			continue
		}
		cmdutils.PrintResponse(os.Stdout, "toolchat", answer)
	}
}

// replHooks prints progress hints and, with --logs, traces state changes.
func replHooks() agent.Hooks {
	return agent.Hooks{
		OnTransition: func(from, to agent.State) {
			slog.Debug("state", "from", from.String(), "to", to.String())
		},
		OnProgress: func(hint string) {
			fmt.Printf("  ↳ %s\n", hint)
		},
	}
}

func runSlashCommand(sess *agent.Session, line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		fmt.Println("  /tools          list available tools")
		fmt.Println("  /history        show the conversation so far")
		fmt.Println("  /save <path>    write the full transcript as JSONL")
		fmt.Println("  exit            leave")
	case "/tools":
		for _, e := range sess.Catalog.Entries() {
			fmt.Printf("  %s (%s)\n", e.Name(), e.Backend())
		}
	case "/history":
		for _, m := range sess.History.Visible() {
			fmt.Printf("%s: %s\n", roleTitle.String(m.Role), m.Content)
		}
	case "/save":
		if arg == "" {
			fmt.Println("usage: /save <path>")
			return
		}
		if err := session.SaveTranscript(arg, sess.History); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("✓ Saved %d messages to %s\n", sess.History.Len(), arg)
	default:
		fmt.Printf("unknown command %q (try /help)\n", cmd)
	}
}

// reportRoundError prints a failed round. The session stays usable.
func reportRoundError(err error) {
	var apiErr *providers.APIError
	var decErr *agent.DecisionFunctionError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "Error: model endpoint returned %d: %s\n", apiErr.StatusCode, apiErr.Message)
	case errors.As(err, &decErr):
		fmt.Fprintf(os.Stderr, "Error: model call failed while %s: %v\n", decErr.Stage, decErr.Err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// listenForSignals closes the session on SIGINT or SIGTERM and exits.
func listenForSignals(sess *agent.Session) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Println("\nGoodbye!")
		slog.Debug("shutting down", "signal", sig.String())
		sess.Close()
		os.Exit(0)
	}()
}
