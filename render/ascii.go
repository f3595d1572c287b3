// Package render draws snapshots for a terminal.
package render

import (
	"fmt"
	"strings"

	"stoneage/game"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	fullStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	winnerStyle  = boxStyle.BorderForeground(lipgloss.Color("11"))
)

var resourceShort = map[game.ResourceType]string{
	game.Wood:  "W",
	game.Brick: "B",
	game.Stone: "S",
	game.Gold:  "G",
	game.Food:  "F",
}

// Full renders the header, the board and every player.
func Full(s game.Snapshot) string {
	return lipgloss.JoinVertical(lipgloss.Left, Header(s), "", Board(s), "", Players(s))
}

func Header(s game.Snapshot) string {
	if s.Terminal {
		winner := "nobody"
		if s.Winner >= 0 && s.Winner < len(s.Players) {
			winner = s.Players[s.Winner].Name
		}
		return titleStyle.Render(fmt.Sprintf("STONE AGE - game over after %d rounds, winner: %s", s.MaxRounds, winner))
	}
	return titleStyle.Render(fmt.Sprintf("STONE AGE - round %d/%d (%s)", s.Round, s.MaxRounds, s.Phase))
}

// Board lists every action space with its occupants, then both offers.
func Board(s game.Snapshot) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("RESOURCE GATHERING ZONES") + "\n")
	for _, space := range game.SpacesOfClass(game.Gathering) {
		v := s.Space(space)
		fmt.Fprintf(&b, "  %-16s d%d  %s  %s\n", space, v.DieSize, workers(v), occupants(s, v))
	}

	b.WriteString(sectionStyle.Render("SPECIAL ACTION ZONES") + "\n")
	for _, space := range game.SpacesOfClass(game.Special) {
		v := s.Space(space)
		fmt.Fprintf(&b, "  %-16s     %s  %s\n", space, workers(v), occupants(s, v))
	}

	civ := s.Space(game.CivilizationCardSlot)
	fmt.Fprintf(&b, "%s %s  %s\n", sectionStyle.Render("CIVILIZATION CARDS"), workers(civ), occupants(s, civ))
	for i := 0; i < s.Rules.OfferSize; i++ {
		if i < len(s.CivilizationOffer) {
			c := s.CivilizationOffer[i]
			fmt.Fprintf(&b, "  %d. %-14s %2d pts\n", i+1, c.Name, c.Points)
		} else {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, mutedStyle.Render("[no card available]"))
		}
	}
	fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(fmt.Sprintf("%d left in deck", s.CivilizationDeck)))

	bld := s.Space(game.BuildingSlot)
	fmt.Fprintf(&b, "%s %s  %s\n", sectionStyle.Render("BUILDINGS"), workers(bld), occupants(s, bld))
	for i := 0; i < s.Rules.OfferSize; i++ {
		if i < len(s.BuildingOffer) {
			bd := s.BuildingOffer[i]
			fmt.Fprintf(&b, "  %d. %-14s %-10s %2d pts\n", i+1, bd.Name, Cost(bd.Cost), bd.Points)
		} else {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, mutedStyle.Render("[no building available]"))
		}
	}
	fmt.Fprintf(&b, "  %s", mutedStyle.Render(fmt.Sprintf("%d left in deck", s.BuildingDeck)))
	return b.String()
}

// Players renders one box per player, side by side.
func Players(s game.Snapshot) string {
	boxes := make([]string, len(s.Players))
	for i, p := range s.Players {
		var b strings.Builder
		b.WriteString(titleStyle.Render(p.Name) + "\n")
		fmt.Fprintf(&b, "Score:     %d\n", p.Score)
		if i < len(s.Scores) {
			fmt.Fprintf(&b, "Final:     %d\n", s.Scores[i].Total)
		}
		fmt.Fprintf(&b, "Workers:   %d/%d placed\n", p.Placed, p.Workers)
		fmt.Fprintf(&b, "Food:      %d (+%d/round)\n", p.Resources.Get(game.Food), p.FoodProduction)
		fmt.Fprintf(&b, "Resources: W%d B%d S%d G%d\n",
			p.Resources.Get(game.Wood), p.Resources.Get(game.Brick), p.Resources.Get(game.Stone), p.Resources.Get(game.Gold))
		fmt.Fprintf(&b, "Tools:     %s\n", tools(p.Tools))
		fmt.Fprintf(&b, "Cards:     %s\n", names(len(p.Cards), func(j int) string { return p.Cards[j].Name }))
		fmt.Fprintf(&b, "Buildings: %s", names(len(p.Buildings), func(j int) string { return p.Buildings[j].Name }))

		style := boxStyle
		if s.Terminal && s.Winner == i {
			style = winnerStyle
		}
		boxes[i] = style.Render(b.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// Scores renders a final score table.
func Scores(scores []game.ScoreBreakdown, winner int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("FINAL SCORES") + "\n")
	fmt.Fprintf(&b, "  %-12s %6s %6s %10s %10s %6s\n", "player", "base", "cards", "buildings", "resources", "total")
	for i, s := range scores {
		line := fmt.Sprintf("  %-12s %6d %6d %10d %10d %6d", s.Name, s.Base, s.Cards, s.Buildings, s.ResourceBonus, s.Total)
		if i == winner {
			line = titleStyle.Render(line + "  winner")
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Cost abbreviates a cost vector, e.g. "2W 2S".
func Cost(c game.Resources) string {
	var parts []string
	for i, n := range c {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, resourceShort[game.ResourceType(i)]))
		}
	}
	if len(parts) == 0 {
		return "free"
	}
	return strings.Join(parts, " ")
}

func workers(v game.SpaceView) string {
	text := fmt.Sprintf("[%d/%d]", v.Occupancy, v.Capacity)
	if v.Occupancy >= v.Capacity {
		return fullStyle.Render(text)
	}
	return text
}

func occupants(s game.Snapshot, v game.SpaceView) string {
	parts := make([]string, 0, len(v.Occupants))
	for _, o := range v.Occupants {
		name := fmt.Sprintf("#%d", o.Player)
		if o.Player >= 0 && o.Player < len(s.Players) {
			name = s.Players[o.Player].Name
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, o.Count))
	}
	return strings.Join(parts, ", ")
}

func tools(ts []int) string {
	if len(ts) == 0 {
		return "none"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprint(t)
	}
	return strings.Join(parts, " ")
}

func names(n int, name func(int) string) string {
	if n == 0 {
		return "-"
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = name(i)
	}
	return strings.Join(parts, ", ")
}
