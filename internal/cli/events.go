package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream round and archive events",
		Long: `Connect to the server's event stream and print events as they happen.

Events:
  - move_submitted: a player moved in the open round
  - round_resolved: the round was resolved and archived
  - round_reset: the open round was discarded
  - game_deleted: an archived game was deleted

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client.Stream(cmd.Context(), "/api/v1/events")
			if err != nil {
				return err
			}
			defer func() { _ = body.Close() }()

			err = readEvents(body, count, func(e Event) {
				output(cmd).Print(e)
			})
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many events (0 streams until interrupted)")

	return cmd
}

// Event is a decoded server-sent event
type Event struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Player    string `json:"player,omitempty"`
	Move      string `json:"move,omitempty"`
	GameID    *int64 `json:"game_id,omitempty"`
	Result    string `json:"result,omitempty"`
}

// errStreamDone stops reading once the requested number of events arrived
var errStreamDone = errors.New("stream done")

// readEvents parses an SSE stream, calling handle for each event other than
// the connection greeting. A positive limit stops after that many events.
func readEvents(r io.Reader, limit int, handle func(Event)) error {
	scanner := bufio.NewScanner(r)
	var name string
	var data []string
	seen := 0

	dispatch := func() error {
		defer func() { name, data = "", nil }()
		if name == "" || name == "connected" {
			return nil
		}

		var e Event
		if err := json.Unmarshal([]byte(strings.Join(data, "\n")), &e); err != nil {
			return fmt.Errorf("decode %s event: %w", name, err)
		}
		handle(e)

		seen++
		if limit > 0 && seen >= limit {
			return errStreamDone
		}
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		case line == "":
			if err := dispatch(); err != nil {
				if errors.Is(err, errStreamDone) {
					return nil
				}
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}
