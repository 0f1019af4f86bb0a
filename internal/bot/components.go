package bot

import "github.com/bwmarrin/discordgo"

// DisableComponents rebuilds component rows with every button and select
// menu disabled, preserving labels, emoji and styles. Used when a
// collector ends and no further input should be accepted.
func DisableComponents(rows []discordgo.MessageComponent) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			if v, ok := row.(discordgo.ActionsRow); ok {
				ar = &v
			} else {
				out = append(out, row)
				continue
			}
		}
		rebuilt := discordgo.ActionsRow{
			Components: make([]discordgo.MessageComponent, 0, len(ar.Components)),
		}
		for _, comp := range ar.Components {
			rebuilt.Components = append(rebuilt.Components, disableComponent(comp))
		}
		out = append(out, rebuilt)
	}
	return out
}

func disableComponent(comp discordgo.MessageComponent) discordgo.MessageComponent {
	switch c := comp.(type) {
	case *discordgo.Button:
		btn := *c
		btn.Disabled = true
		return btn
	case discordgo.Button:
		c.Disabled = true
		return c
	case *discordgo.SelectMenu:
		sm := *c
		sm.Disabled = true
		return sm
	case discordgo.SelectMenu:
		c.Disabled = true
		return c
	default:
		return comp
	}
}
