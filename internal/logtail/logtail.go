package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is not an error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Keys written by the logging package's JSON encoder.
const (
	keyTime    = "timestamp"
	keyLevel   = "level"
	keyLogger  = "logger"
	keyMessage = "message"
	keyCaller  = "caller"

	isoLayout = "2006-01-02T15:04:05.000Z0700"
)

// Format renders one JSON log entry as a single readable line:
//
//	2026-10-19 14:32:15 INFO  pkgdrop.session install started host=192.168.1.50 package_id=1
//
// Lines that are not JSON objects come back unchanged.
func Format(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return line
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
		return line
	}

	var b strings.Builder
	if ts, ok := entry[keyTime].(string); ok {
		if parsed, err := time.Parse(isoLayout, ts); err == nil {
			ts = parsed.Local().Format("2006-01-02 15:04:05")
		}
		b.WriteString(ts)
		b.WriteByte(' ')
	}
	if level, ok := entry[keyLevel].(string); ok {
		fmt.Fprintf(&b, "%-5s ", strings.ToUpper(level))
	}
	if name, ok := entry[keyLogger].(string); ok && name != "" {
		b.WriteString(name)
		b.WriteByte(' ')
	}
	if msg, ok := entry[keyMessage].(string); ok {
		b.WriteString(msg)
	}

	fields := make([]string, 0, len(entry))
	for k := range entry {
		switch k {
		case keyTime, keyLevel, keyLogger, keyMessage, keyCaller:
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		fmt.Fprintf(&b, " %s=%s", k, formatValue(entry[k]))
	}
	return strings.TrimRight(b.String(), " ")
}

// FormatLines applies Format to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	case nil:
		return "null"
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}
