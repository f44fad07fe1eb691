package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/netgate"
)

// FormatResponse renders an assistant answer for the terminal. Verbose
// adds the confidence and the pipeline stage that produced it.
func FormatResponse(resp domain.Response, verbose bool) string {
	var b strings.Builder

	b.WriteString(resp.Text)
	b.WriteString("\n")

	if len(resp.References) > 0 {
		b.WriteString("\n")
		b.WriteString(Dim("References: "))
		b.WriteString(StyleBlue.Render(strings.Join(resp.References, ", ")))
		b.WriteString("\n")
	}

	if len(resp.FollowUps) > 0 {
		b.WriteString("\n")
		b.WriteString(Dim("You might also ask:"))
		b.WriteString("\n")
		for _, q := range resp.FollowUps {
			fmt.Fprintf(&b, "  %s %s\n", StylePurple.Render("›"), q)
		}
	}

	if verbose {
		b.WriteString("\n")
		b.WriteString(ConfidenceIndicator(resp.Confidence))
		if stage := resp.Context["stage"]; stage != "" {
			b.WriteString(Dim("  stage " + stage))
		}
		if topic := resp.Context["topic"]; topic != "" {
			b.WriteString(Dim("  topic ") + TopicBadge(topic))
		}
		if model := resp.Context["model"]; model != "" {
			b.WriteString(Dim("  model " + model))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatHistory renders a session's turns, oldest first.
func FormatHistory(sessionID string, turns []domain.Turn) string {
	if len(turns) == 0 {
		return Dim(fmt.Sprintf("No history for session %s.", sessionID)) + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("History " + sessionID))
	b.WriteString("\n")
	for i, t := range turns {
		fmt.Fprintf(&b, "%s %s %s\n",
			Dim(fmt.Sprintf("%2d.", i+1)),
			Bold(Truncate(t.Query, 60)),
			TopicBadge(t.Topic),
		)
		fmt.Fprintf(&b, "    %s\n", Dim(Truncate(firstLine(t.Response), 72)))
	}
	return b.String()
}

// FormatNetworkStatus renders one probe result.
func FormatNetworkStatus(st netgate.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", AvailabilityIndicator(st.Available), st.Address)
	if len(st.Latencies) > 0 {
		fmt.Fprintf(&b, "  %s %s", Dim("median"), Millis(st.Median))
	}
	if st.Failures > 0 {
		fmt.Fprintf(&b, "  %s", StyleRed.Render(fmt.Sprintf("%d failed", st.Failures)))
	}
	b.WriteString("\n")
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
