package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
)

// Ensure Narrator implements marketway.Narrator at compile time.
var _ marketway.Narrator = (*Narrator)(nil)

// Narrator turns directions into a short friendly paragraph using Gemini.
type Narrator struct {
	gen generator
}

// NewNarrator creates a new Narrator.
func NewNarrator(models ContentGenerator, opts ...Option) *Narrator {
	return &Narrator{gen: newGenerator(models, opts)}
}

// Narrate renders n as conversational prose.
func (n *Narrator) Narrate(ctx context.Context, narration *marketway.Narration) (string, error) {
	if narration == nil || narration.Directions == nil {
		return "", marketway.Errorf(marketway.EINVALID, "directions required")
	}

	text, err := n.gen.generate(ctx, BuildNarratorPrompt(narration), BuildNarratorConfig())
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", marketway.Errorf(marketway.EINTERNAL, "gemini returned empty narration")
	}
	return text, nil
}

// entranceLayout tells the model how the aisles connect to the entrance.
const entranceLayout = `All directions start at the main gate of the market.
Entering through the main gate you walk straight into aisle 1, a long aisle with its lines on the RIGHT.
To reach aisle 2, turn left at the first line you see after the gate, then take the right turn a few metres ahead; aisle 2 has its lines on the LEFT.
The order of a line is its position in the aisle: order one is the first line you meet on that side.`

// BuildNarratorConfig returns the GenerateContentConfig for narration calls.
func BuildNarratorConfig() *genai.GenerateContentConfig {
	temp := float32(0.6)
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(
			"You are a friendly market guide helping shoppers find their way. " +
				"Keep answers to two or three conversational sentences.",
		),
		Temperature: &temp,
	}
}

// BuildNarratorPrompt builds the narration prompt for n.
func BuildNarratorPrompt(n *marketway.Narration) string {
	d := n.Directions
	interest := n.Interest
	if interest == "" {
		interest = "products"
	}

	var sb strings.Builder
	sb.WriteString(entranceLayout)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Line name: %s\n", n.LineName)
	fmt.Fprintf(&sb, "Shopper is looking for: %s\n", interest)
	fmt.Fprintf(&sb, "Aisle: %d\n", d.Aisle)
	fmt.Fprintf(&sb, "Position: the %s line on the %s\n", strings.ToLower(marketway.Ordinal(d.Order)), d.Side)
	if len(d.Landmarks) > 0 {
		fmt.Fprintf(&sb, "Lines passed on the way: %s\n", strings.Join(d.Landmarks, ", "))
	}
	fmt.Fprintf(&sb, "Steps: %s\n\n", d.String())
	sb.WriteString("Rewrite these steps as warm, brief directions from the main gate.\n")
	sb.WriteString("Focus on what the shopper wants rather than the line name, and mention the product,\n")
	fmt.Fprintf(&sb, "for example: \"the second line on your right is **%s**, where you can find stalls selling %s\".\n", n.LineName, interest)
	return sb.String()
}
