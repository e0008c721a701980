package main

import (
	"github.com/Jacobbrewer1/discordgo"
)

// deferEphemeral acknowledges the interaction with a deferred ephemeral
// reply. The outcome is reported later with an ephemeral follow-up.
func deferEphemeral(a IApp, i *discordgo.InteractionCreate) error {
	return a.Discord().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

// followUpEphemeral sends a follow-up only the requester can see.
func followUpEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	_, err := a.Discord().FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}
