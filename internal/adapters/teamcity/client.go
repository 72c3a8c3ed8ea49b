package teamcity

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/lotoze/ktrun/internal/core/domain"
	"github.com/lotoze/ktrun/internal/core/ports"
)

// Client consumes the stdout stream of one test process and forwards
// structured events to a Reporter. It implements io.Writer and buffers
// partial lines across writes; Close flushes the trailing line and closes
// the synthetic root suite.
//
// A Client is bound to a single process and is not safe for concurrent use.
type Client struct {
	reporter ports.Reporter
	settings domain.ClientSettings

	buf         bytes.Buffer
	rootOpen    bool
	suites      []string
	current     string
	pendingFail *domain.TestEvent
	failOutput  []string
}

// NewClient creates a client bound to the given reporter.
func NewClient(reporter ports.Reporter, settings domain.ClientSettings) *Client {
	return &Client{reporter: reporter, settings: settings}
}

var _ ports.StreamClient = (*Client)(nil)

// Write consumes a chunk of process output.
func (c *Client) Write(p []byte) (int, error) {
	c.buf.Write(p)
	for {
		line, ok := c.nextLine()
		if !ok {
			break
		}
		c.handleLine(line)
	}
	return len(p), nil
}

// Close flushes any trailing partial line, reports a failure still waiting
// for its testFinished message, and closes the root suite. A stream can end
// right after testFailed when the binary crashes or output is truncated;
// that failure must not be lost.
func (c *Client) Close() error {
	if rest := strings.TrimSuffix(c.buf.String(), "\n"); rest != "" {
		c.handleLine(rest)
	}
	c.buf.Reset()
	c.flushPendingFail()
	if c.rootOpen {
		c.reporter.Report(domain.TestEvent{Kind: domain.EventSuiteFinished, Suite: c.settings.RootName()})
		c.rootOpen = false
	}
	return nil
}

func (c *Client) nextLine() (string, bool) {
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return "", false
	}
	line := strings.TrimSuffix(string(data[:idx]), "\r")
	c.buf.Next(idx + 1)
	return line, true
}

func (c *Client) handleLine(line string) {
	c.openRoot()

	msg, ok := ParseLine(line)
	if !ok {
		c.handleOutput(line)
		return
	}

	switch msg.Name {
	case "testSuiteStarted":
		c.suites = append(c.suites, msg.Attrs["name"])
		c.reporter.Report(domain.TestEvent{Kind: domain.EventSuiteStarted, Suite: c.suitePath()})
	case "testSuiteFinished":
		c.reporter.Report(domain.TestEvent{Kind: domain.EventSuiteFinished, Suite: c.suitePath()})
		if len(c.suites) > 0 {
			c.suites = c.suites[:len(c.suites)-1]
		}
	case "testStarted":
		c.current = msg.Attrs["name"]
		c.failOutput = nil
		c.reporter.Report(domain.TestEvent{
			Kind:  domain.EventTestStarted,
			Suite: c.suitePath(),
			Name:  c.qualify(msg.Attrs["name"]),
		})
	case "testFailed":
		ev := domain.TestEvent{
			Kind:    domain.EventTestFailed,
			Suite:   c.suitePath(),
			Name:    c.qualify(msg.Attrs["name"]),
			Message: msg.Attrs["message"],
			Details: msg.Attrs["details"],
		}
		if c.settings.TreatFailedOutputAsStacktrace {
			c.pendingFail = &ev
		} else {
			c.reporter.Report(ev)
		}
	case "testIgnored":
		c.reporter.Report(domain.TestEvent{
			Kind:  domain.EventTestIgnored,
			Suite: c.suitePath(),
			Name:  c.qualify(msg.Attrs["name"]),
		})
	case "testFinished":
		c.flushPendingFail()
		c.reporter.Report(domain.TestEvent{
			Kind:     domain.EventTestFinished,
			Suite:    c.suitePath(),
			Name:     c.qualify(msg.Attrs["name"]),
			Duration: parseDuration(msg.Attrs["duration"]),
		})
		c.current = ""
		c.failOutput = nil
	default:
		// Unknown service messages are forwarded as raw output.
		c.handleOutput(line)
	}
}

// handleOutput routes a plain output line. While a test is running with the
// stacktrace setting enabled, its output is collected for a potential
// failure instead of being reported immediately.
func (c *Client) handleOutput(line string) {
	if c.settings.TreatFailedOutputAsStacktrace && c.current != "" {
		c.failOutput = append(c.failOutput, line)
		return
	}
	c.reporter.Report(domain.TestEvent{
		Kind:  domain.EventOutput,
		Suite: c.suitePath(),
		Name:  c.qualify(c.current),
		Line:  line,
	})
}

// flushPendingFail reports a held failure, folding collected output into
// the failure details.
func (c *Client) flushPendingFail() {
	if c.pendingFail == nil {
		return
	}
	if len(c.failOutput) > 0 {
		trace := strings.Join(c.failOutput, "\n")
		if c.settings.ParseStackTrace != nil {
			if parsed, ok := c.settings.ParseStackTrace(trace); ok {
				trace = parsed
			}
		}
		if c.pendingFail.Details == "" {
			c.pendingFail.Details = trace
		} else {
			c.pendingFail.Details += "\n" + trace
		}
	}
	c.reporter.Report(*c.pendingFail)
	c.pendingFail = nil
}

func (c *Client) openRoot() {
	if c.rootOpen {
		return
	}
	c.rootOpen = true
	c.reporter.Report(domain.TestEvent{Kind: domain.EventSuiteStarted, Suite: c.settings.RootName()})
}

func (c *Client) suitePath() string {
	if len(c.suites) == 0 {
		return c.settings.RootName()
	}
	return c.settings.RootName() + "." + strings.Join(c.suites, ".")
}

func (c *Client) qualify(name string) string {
	if name == "" || !c.settings.PrependSuiteName || len(c.suites) == 0 {
		return name
	}
	return strings.Join(c.suites, ".") + "." + name
}

func parseDuration(attr string) time.Duration {
	if attr == "" {
		return 0
	}
	ms, err := strconv.Atoi(attr)
	if err != nil || ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
