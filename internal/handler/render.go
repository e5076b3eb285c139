package handler

import (
	"fmt"
	"strings"

	"palabra/internal/domain"
)

const mainMenuText = "🏠 Main menu\n\nPick a study mode:"

func modeLabel(mode domain.Mode, due map[domain.Mode]int) string {
	if n, ok := due[mode]; ok {
		return fmt.Sprintf("%s (%d)", mode.Title(), n)
	}
	return mode.Title()
}

// cardText renders the word and whatever has been revealed so far
func cardText(mode domain.Mode, word string, reveal *domain.Reveal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s\n\n📝 %s", mode.Title(), word)
	if reveal == nil {
		return b.String()
	}
	if reveal.Meaning != "" {
		fmt.Fprintf(&b, "\n\n🔄 %s", reveal.Meaning)
	}
	if len(reveal.Examples) == 0 {
		b.WriteString("\n\n(no examples)")
		return b.String()
	}
	b.WriteString("\n")
	for _, example := range reveal.Examples {
		fmt.Fprintf(&b, "\n• %s", example)
	}
	return b.String()
}

func emptyText(mode domain.Mode) string {
	return fmt.Sprintf("🎉 You have reviewed everything in %s.", mode.Title())
}
