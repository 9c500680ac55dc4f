package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Secondary input channel: commands that take free text or id lists fall
// back to stdin when the argument is omitted (or given as "-") and stdin is
// not a live terminal. This enables pipe-style composition:
//
//	grep -l spam comments.txt | pagectl hide shop
//	echo "Release day!" | pagectl post shop

// stdinIsTerminal reports whether stdin is an interactive terminal. When it
// is, we never block waiting for piped input.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return true
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// resolveText returns the free-text argument for a command: the joined
// positional arguments when present (positional always wins), otherwise the
// trimmed content of the secondary channel. Empty-after-trim counts as
// absent.
func resolveText(args []string, stdin io.Reader, interactive bool) (string, error) {
	joined := strings.TrimSpace(strings.Join(args, " "))
	if joined != "" && joined != "-" {
		return joined, nil
	}
	if interactive {
		return "", fmt.Errorf("no text given and stdin is a terminal")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no text given (empty stdin)")
	}
	return text, nil
}

// resolveIDList returns the identifier list for a command: a single
// delimited positional argument when present, otherwise the secondary
// channel. Commas and newlines both separate entries; entries are trimmed
// and blank ones dropped.
func resolveIDList(args []string, stdin io.Reader, interactive bool) ([]string, error) {
	raw := strings.Join(args, ",")
	if strings.TrimSpace(raw) == "" || strings.TrimSpace(raw) == "-" {
		if interactive {
			return nil, fmt.Errorf("no ids given and stdin is a terminal")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = string(data)
	}
	ids := splitIDs(raw)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no ids given")
	}
	return ids, nil
}

// splitIDs normalizes a delimited id string: comma and newline are both
// separators, whitespace is trimmed, blank segments are dropped.
func splitIDs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// printJSON pretty-prints a value on stdout. Every successful operation ends
// here — the output contract is "valid JSON", nothing more.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printRaw pretty-prints a raw JSON response on stdout.
func printRaw(raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("reformat response: %w", err)
	}
	return printJSON(v)
}
