package tgbot

import (
	"context"
	"sort"
	"strings"
)

type HelpCommand struct {
	commands map[string]Command
}

func (c *HelpCommand) Run(_ context.Context, _ int64, args string) (string, error) {
	if command, ok := c.commands[strings.TrimPrefix(args, "/")]; ok && args != "" {
		return command.Help(), nil
	}
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		if name == "start" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		b.WriteString("/")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("For details send /help and a command name")
	return b.String(), nil
}

func (c *HelpCommand) Help() string {
	return "Lists the available commands"
}
