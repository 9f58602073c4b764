// Package report renders export run summaries.
//
// Three writers share the Writer interface: TextWriter for terminal
// output (the default), MarkdownWriter for GitHub-flavored Markdown,
// and JSONWriter for programmatic consumers. The command layer selects
// one based on the --json/--markdown flags and the output destination
// based on --output.
package report
