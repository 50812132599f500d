package report

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Report as a Markdown document.
type MarkdownFormatter struct {
	opts options
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	return &MarkdownFormatter{opts: newOptions(opts)}
}

func (f *MarkdownFormatter) Format(r *Report) string {
	t := f.opts.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Annotation Report"))

	fmt.Fprintf(&sb, "## %s\n\n", t("Video"))
	fmt.Fprintf(&sb, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&sb, "| %s | %s |\n", t("Name"), escape(r.Video.URLLocal))
	if r.Video.Path != "" {
		fmt.Fprintf(&sb, "| %s | %s |\n", t("Path"), escape(r.Video.Path))
	}
	if r.Video.URLYoutube != "" {
		fmt.Fprintf(&sb, "| %s | %s |\n", t("YouTube"), escape(r.Video.URLYoutube))
	}
	if r.Video.FrameRate > 0 {
		fmt.Fprintf(&sb, "| %s | %.3f fps |\n", t("Frame Rate"), r.Video.FrameRate)
	}
	if r.Video.FrameCount > 0 {
		fmt.Fprintf(&sb, "| %s | %d |\n", t("Frames"), r.Video.FrameCount)
	}
	fmt.Fprintf(&sb, "| %s | %d |\n\n", t("Annotations"), len(r.Entries))

	fmt.Fprintf(&sb, "## %s\n\n", t("Annotations"))
	if len(r.Entries) == 0 {
		fmt.Fprintf(&sb, "_%s_\n\n", t("No annotations"))
	} else {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n|---|---|---|---|\n", t("Time"), t("Frame"), t("Label"), t("Team"))
		for _, e := range r.Entries {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", e.GameTime, escape(e.Position), escape(e.Label), escape(e.Team))
		}
		sb.WriteString("\n")
	}

	writeCounts(&sb, t("By Team"), t("Team"), t, r.ByTeam)
	writeCounts(&sb, t("By Label"), t("Label"), t, r.ByLabel)

	sb.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), r.GeneratedAt.Format("2006-01-02 15:04:05"))
	if f.opts.version != "" {
		footer += fmt.Sprintf(" (framemark %s)", f.opts.version)
	}
	sb.WriteString(footer + "\n")

	return sb.String()
}

func writeCounts(sb *strings.Builder, heading, column string, t Translator, counts []Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", heading)
	fmt.Fprintf(sb, "| %s | %s |\n|---|---|\n", column, t("Count"))
	for _, c := range counts {
		fmt.Fprintf(sb, "| %s | %d |\n", escape(c.Name), c.Count)
	}
	sb.WriteString("\n")
}

// escape keeps cell text from breaking the table.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
