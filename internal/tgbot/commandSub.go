package tgbot

import "context"

type SubCommand struct {
	subs *subscriptions
}

func (c *SubCommand) Run(_ context.Context, chatID int64, _ string) (string, error) {
	if !c.subs.Add(chatID) {
		return "You are already subscribed, to unsubscribe: /unsub", nil
	}
	return "Subscribed to new games, to unsubscribe: /unsub", nil
}

func (c *SubCommand) Help() string {
	return "Get a message for every new game"
}

type UnsubCommand struct {
	subs *subscriptions
}

func (c *UnsubCommand) Run(_ context.Context, chatID int64, _ string) (string, error) {
	if !c.subs.Remove(chatID) {
		return "You are not subscribed, to subscribe: /sub", nil
	}
	return "Unsubscribed, to subscribe again: /sub", nil
}

func (c *UnsubCommand) Help() string {
	return "Stop the new game messages"
}
