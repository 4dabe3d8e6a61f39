package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/maitredhq/maitred/internal/persona"
)

var quitWords = map[string]bool{"quit": true, "exit": true, "bye": true}

func newChatCmd(p persona.Persona) *cobra.Command {
	use := "staff"
	short := "Chat as restaurant staff (full operational access)"
	label := "Staff"
	if p == persona.External {
		use = "guest"
		short = "Chat as a guest (menu and dining questions)"
		label = "Guest"
	}

	var thread string
	var fresh bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAPIKey(); err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			threadID := thread
			if threadID == "" {
				threadID = p.BaseThreadID()
			}
			if fresh {
				threadID = threadID + "-" + uuid.NewString()
			}
			return chatLoop(cmd.Context(), a, p, threadID, label)
		},
	}
	cmd.Flags().StringVar(&thread, "thread", "", "conversation thread id (defaults per persona)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "start a new thread instead of resuming")
	return cmd
}

func chatLoop(parent context.Context, a *app, p persona.Persona, threadID, label string) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	fmt.Printf("%s chat on thread %s (quit/exit/bye or Ctrl-C to leave)\n", label, threadID)
	for {
		fmt.Printf("\u001b[94m%s\u001b[0m: ", label)
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-inputCh:
			if !ok {
				return nil
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quitWords[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		reply, err := a.pipe.ProcessTurn(ctx, p, threadID, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Printf("\u001b[93mMaitred\u001b[0m: %s\n", reply)
	}
}
