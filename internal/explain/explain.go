package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bayneri/yearcfg/internal/parser"
	"github.com/bayneri/yearcfg/internal/settings"
)

const (
	TopicDocuments = "documents"
	TopicStatus    = "status"
	TopicParser    = "parser"
)

func Topics() []string {
	topics := []string{TopicDocuments, TopicStatus, TopicParser}
	sort.Strings(topics)
	return topics
}

func Topic(name string) (string, error) {
	switch name {
	case TopicDocuments:
		return Documents(), nil
	case TopicStatus:
		return Status(), nil
	case TopicParser:
		return Parser(), nil
	default:
		return "", fmt.Errorf("unknown explain topic %q (topics: %s)", name, strings.Join(Topics(), ", "))
	}
}

func Documents() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Each year is read from config/years/{year}/{document}.yaml.\n\n")
	for _, name := range []string{settings.DocumentRobot, settings.DocumentCourse, settings.DocumentSensors, settings.DocumentRules} {
		tmpl, err := settings.DocumentForName(name)
		if err != nil {
			continue
		}
		state := "disabled"
		if tmpl.EnabledDefault {
			state = "enabled"
		}
		fmt.Fprintf(&b, "%s (%s by default)\n  %s\n", tmpl.Name, state, tmpl.Description)
		for _, pitfall := range tmpl.Pitfalls {
			fmt.Fprintf(&b, "  - %s\n", pitfall)
		}
	}
	fmt.Fprintf(&b, "\nThe image path of a year is %s/{year}/{course.image.filename}.", settings.DefaultImagePrefix)
	return b.String()
}

func Status() string {
	return `Every document, year and load gets a status.

A document is ok when it was fetched and parsed, error when either step failed (an empty mapping is used instead), and skipped when it is disabled.
A year is error when all of its enabled documents failed; such a year is left out and lookups for it fail. A year with any warning is partial but still served.
The load as a whole is ok only when every configured year is ok. Use --fail-on-partial to turn a partial load into exit code 2.`
}

func Parser() string {
	return fmt.Sprintf(`YAML parsing is provided by a backend that is loaded once, in the background, when the process starts.

Loading waits for the backend for at most parser.readyTimeout (default %s). If the backend never becomes ready, nothing is loaded and every lookup reports that the configuration is not initialized.
Supported backends: %s.`, settings.DefaultReadyTimeout, strings.Join(parser.Backends(), ", "))
}
