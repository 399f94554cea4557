// Package aggregate formats, parses and sums the summary blocks printed by workers.
package aggregate

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/ui/output"
	"go.trai.ch/remold/internal/ui/style"
)

// Title is the first line of a summary block.
const Title = "Transformation summary"

var labels = map[domain.Counter]string{
	domain.CounterProcessed:         "- Sources processed: ",
	domain.CounterTransformed:       "- Sources transformed: ",
	domain.CounterSignedSeen:        "- Signed sources discovered: ",
	domain.CounterSignedTransformed: "- Signed sources transformed: ",
	domain.CounterUnresolvable:      "- Sources with unresolvable dependencies: ",
}

// Label returns the line prefix of a counter.
func Label(c domain.Counter) string {
	return labels[c]
}

// Format renders s as a plain summary block, the form workers print to stdout.
func Format(s domain.Summary) string {
	var b strings.Builder
	b.WriteString(Title)
	b.WriteByte('\n')
	for _, c := range domain.Counters {
		b.WriteString(labels[c])
		b.WriteString(strconv.Itoa(s.Get(c)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse looks for the first summary block in text.
// It reports false when the title is missing or any counter line after it is
// absent, out of order, or not a non-negative integer.
func Parse(text string) (bool, domain.Summary) {
	var s domain.Summary

	sc := bufio.NewScanner(strings.NewReader(text))
	found := false
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == Title {
			found = true
			break
		}
	}
	if !found {
		return false, domain.Summary{}
	}

	for _, c := range domain.Counters {
		if !sc.Scan() {
			return false, domain.Summary{}
		}
		line := strings.TrimRight(sc.Text(), " \r\t")
		value, ok := strings.CutPrefix(line, labels[c])
		if !ok {
			return false, domain.Summary{}
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return false, domain.Summary{}
		}
		s.Add(c, n)
	}
	return true, s
}

// ParseAndAccumulate adds the counters of the block in text to summary.
// Text without a valid block leaves summary unchanged.
func ParseAndAccumulate(text string, summary *domain.Summary) {
	if summary == nil {
		return
	}
	if ok, parsed := Parse(text); ok {
		summary.Merge(parsed)
	}
}

// Render writes s to w as a styled summary block.
// Without colors the output is identical to Format.
func Render(w io.Writer, s domain.Summary) error {
	out := output.New(w)

	title := out.String(Title).Bold().Foreground(termenv.RGBColor(string(style.Iris)))
	lines := []string{title.String()}
	for _, c := range domain.Counters {
		label := out.String(labels[c]).Foreground(termenv.RGBColor(string(style.Slate)))
		value := out.String(strconv.Itoa(s.Get(c))).Bold()
		lines = append(lines, label.String()+value.String())
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// PrintSummary accumulates every worker output in order and renders the total.
func PrintSummary(w io.Writer, outputs []string) (domain.Summary, error) {
	var total domain.Summary
	for _, text := range outputs {
		ParseAndAccumulate(text, &total)
	}
	return total, Render(w, total)
}
