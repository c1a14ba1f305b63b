package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dialogkit/wit"
	"github.com/dialogkit/wit/internal/transcript"
)

// runInteractive reads lines from stdin and parses each one, printing
// the extracted entities. When a history database is configured, every
// exchange is recorded so it can be replayed with "wit history".
func runInteractive(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, configPath, sessionID string) error {
	cfg, client, err := setup(stderr, configPath)
	if err != nil {
		return err
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var history *transcript.Store
	if cfg.HistoryDB != "" {
		history, err = transcript.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("open history db: %w", err)
		}
		defer history.Close()
	}

	fmt.Fprintf(stdout, "session %s (enter text to parse, ctrl-d to quit)\n", sessionID)

	scanner := bufio.NewScanner(stdin)
	fmt.Fprint(stdout, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(stdout, "> ")
			continue
		}

		reply, err := parseLine(ctx, client, line)
		if err != nil {
			// Keep the REPL alive on API errors; the error is the reply.
			reply = err.Error()
		}
		fmt.Fprintln(stdout, reply)

		if history != nil {
			if err := history.Record(sessionID, "user", line); err != nil {
				return fmt.Errorf("record turn: %w", err)
			}
			if err := history.Record(sessionID, "bot", reply); err != nil {
				return fmt.Errorf("record turn: %w", err)
			}
		}

		fmt.Fprint(stdout, "> ")
	}
	fmt.Fprintln(stdout)
	return scanner.Err()
}

// parseLine is one REPL exchange: parse the utterance and summarize
// what the API understood.
func parseLine(ctx context.Context, client *wit.Client, line string) (string, error) {
	resp, err := client.Message(ctx, line)
	if err != nil {
		return "", err
	}

	if len(resp.Entities) == 0 {
		return "(no entities)", nil
	}

	var parts []string
	for name, value := range resp.Entities {
		parts = append(parts, fmt.Sprintf("%s=%v", name, value))
	}
	return strings.Join(parts, " "), nil
}

// runConverse drives one conversation step and prints the bot's move.
func runConverse(ctx context.Context, stdout, stderr io.Writer, configPath, sessionID, text string) error {
	_, client, err := setup(stderr, configPath)
	if err != nil {
		return err
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	resp, err := client.Converse(ctx, sessionID, text, nil, false)
	if err != nil {
		return fmt.Errorf("converse: %w", err)
	}

	switch resp.Type {
	case "msg":
		fmt.Fprintln(stdout, resp.Msg)
	case "action":
		fmt.Fprintf(stdout, "(action %s)\n", resp.Action)
	default:
		fmt.Fprintf(stdout, "(%s)\n", resp.Type)
	}
	fmt.Fprintf(stderr, "session %s\n", sessionID)
	return nil
}

// runHistory lists recorded sessions, or replays one transcript.
func runHistory(stdout io.Writer, configPath, sessionID string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return fmt.Errorf("no history_db configured")
	}

	history, err := transcript.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history db: %w", err)
	}
	defer history.Close()

	if sessionID == "" {
		sessions, err := history.Sessions()
		if err != nil {
			return err
		}
		for _, s := range sessions {
			fmt.Fprintf(stdout, "%s  %s  %d turns\n",
				s.ID, s.StartedAt.Format("2006-01-02 15:04"), s.Turns)
		}
		return nil
	}

	turns, err := history.Turns(sessionID)
	if err != nil {
		return err
	}
	for _, t := range turns {
		fmt.Fprintf(stdout, "%-4s %s\n", t.Role+":", t.Text)
	}
	return nil
}
