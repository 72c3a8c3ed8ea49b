// Package teamcity parses the TeamCity service messages streamed by ktest
// binaries running with the TEAMCITY logger and turns them into test events.
package teamcity

import "strings"

const (
	messagePrefix = "##teamcity["
	messageSuffix = "]"
)

// ServiceMessage is a single parsed ##teamcity[...] line.
type ServiceMessage struct {
	Name  string
	Attrs map[string]string
}

// ParseLine parses one output line. ok is false when the line is not a
// well-formed service message; such lines are plain test output, never
// errors.
func ParseLine(line string) (ServiceMessage, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, messagePrefix) || !strings.HasSuffix(trimmed, messageSuffix) {
		return ServiceMessage{}, false
	}

	body := trimmed[len(messagePrefix) : len(trimmed)-len(messageSuffix)]
	name, rest, _ := strings.Cut(body, " ")
	if name == "" {
		return ServiceMessage{}, false
	}

	attrs, ok := parseAttributes(rest)
	if !ok {
		return ServiceMessage{}, false
	}
	return ServiceMessage{Name: name, Attrs: attrs}, true
}

// parseAttributes scans a sequence of key='value' pairs. Values use the
// TeamCity escaping scheme: |' |n |r || |[ |].
func parseAttributes(s string) (map[string]string, bool) {
	attrs := make(map[string]string)
	i := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i >= len(s) {
			break
		}

		eq := strings.IndexByte(s[i:], '=')
		if eq <= 0 {
			return nil, false
		}
		key := s[i : i+eq]
		i += eq + 1

		if i >= len(s) || s[i] != '\'' {
			return nil, false
		}
		i++

		var value strings.Builder
		closed := false
		for i < len(s) {
			c := s[i]
			if c == '|' {
				if i+1 >= len(s) {
					return nil, false
				}
				unescaped, ok := unescapeChar(s[i+1])
				if !ok {
					return nil, false
				}
				value.WriteByte(unescaped)
				i += 2
				continue
			}
			if c == '\'' {
				closed = true
				i++
				break
			}
			value.WriteByte(c)
			i++
		}
		if !closed {
			return nil, false
		}
		attrs[key] = value.String()
	}
	return attrs, true
}

func unescapeChar(c byte) (byte, bool) {
	switch c {
	case '\'':
		return '\'', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case '|':
		return '|', true
	case '[':
		return '[', true
	case ']':
		return ']', true
	default:
		return 0, false
	}
}
