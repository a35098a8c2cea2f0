package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/toolchat/internal/shared/cmdutils"
)

var askMessage string

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Send a single message and print the answer",
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMessage, "message", "m", "", "Message to send")
	_ = askCmd.MarkFlagRequired("message")
}

func runAsk(_ *cobra.Command, _ []string) error {
	container, err := loadContainer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	sess, err := container.OpenSession(ctx, replHooks())
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Fprintf(os.Stderr, "  ↳ thinking...\n")
	answer, err := sess.Submit(ctx, askMessage)
	if err != nil {
		reportRoundError(err)
		return fmt.Errorf("round failed")
	}
	cmdutils.PrintResponse(os.Stdout, "toolchat", answer)
	return nil
}
